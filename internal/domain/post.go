package domain

import "time"

type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeCarousel MediaType = "carousel"
)

// Post is an extracted Instagram post. It is written once and never updated.
type Post struct {
	ID          string     `json:"id"`           // Generated at extraction time
	InstagramID string     `json:"instagram_id"` // Shortcode taken from the post URL
	Caption     *string    `json:"caption"`
	Hashtags    []string   `json:"hashtags"`
	MediaType   MediaType  `json:"media_type"`
	MediaURLs   []string   `json:"media_urls"`
	Likes       int        `json:"likes"`
	Comments    int        `json:"comments"`
	LocalPaths  []string   `json:"local_paths"` // Successfully downloaded media only
	CreatedAt   *time.Time `json:"created_at"`  // Publish time on Instagram, not scrape time
}

// Snapshot is a point-in-time read of a post from Instagram.
type Snapshot struct {
	Caption      *string
	LikeCount    int
	CommentCount int
	TakenAt      *time.Time
	IsVideo      bool
	MediaCount   int
	URL          string   // Display URL when MediaCount == 1
	SidecarURLs  []string // Display URL of every carousel item
}

// MediaURLs lists the remote media of the snapshot in display order.
func (s *Snapshot) MediaURLs() []string {
	if s.MediaCount == 1 {
		return []string{s.URL}
	}
	urls := make([]string, len(s.SidecarURLs))
	copy(urls, s.SidecarURLs)
	return urls
}

// ClassifyMedia maps the snapshot flags to a MediaType. A video always wins
// over the item count.
func ClassifyMedia(isVideo bool, mediaCount int) MediaType {
	switch {
	case isVideo:
		return MediaTypeVideo
	case mediaCount > 1:
		return MediaTypeCarousel
	default:
		return MediaTypeImage
	}
}
