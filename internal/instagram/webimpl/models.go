package webimpl

// mediaResponse is the body of /p/<shortcode>/?__a=1&__d=dis
type mediaResponse struct {
	RequireLogin bool `json:"require_login"`
	GraphQL      struct {
		ShortcodeMedia *shortcodeMedia `json:"shortcode_media"`
	} `json:"graphql"`
}

type shortcodeMedia struct {
	Shortcode                string        `json:"shortcode"`
	IsVideo                  bool          `json:"is_video"`
	DisplayURL               string        `json:"display_url"`
	TakenAtTimestamp         int64         `json:"taken_at_timestamp"`
	EdgeMediaToCaption       captionEdges  `json:"edge_media_to_caption"`
	EdgeMediaPreviewLike     counter       `json:"edge_media_preview_like"`
	EdgeMediaToComment       counter       `json:"edge_media_to_comment"`
	EdgeMediaToParentComment *counter      `json:"edge_media_to_parent_comment"`
	EdgeSidecarToChildren    *sidecarEdges `json:"edge_sidecar_to_children"`
}

type counter struct {
	Count int `json:"count"`
}

type captionEdges struct {
	Edges []struct {
		Node struct {
			Text string `json:"text"`
		} `json:"node"`
	} `json:"edges"`
}

type sidecarEdges struct {
	Edges []struct {
		Node struct {
			DisplayURL string `json:"display_url"`
			IsVideo    bool   `json:"is_video"`
		} `json:"node"`
	} `json:"edges"`
}
