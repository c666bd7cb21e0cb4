package webimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/orgball2608/insta-media-service/internal/domain"
	"github.com/orgball2608/insta-media-service/internal/instagram"
	"github.com/orgball2608/insta-media-service/pkg/config"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

const webAppID = "936619743392459"

var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Accept":          "application/json,text/html;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"X-IG-App-ID":     webAppID,
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// WebClient reads posts anonymously from the public web JSON endpoint.
type WebClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

var _ instagram.Client = (*WebClient)(nil)

func New(opts Opts) *WebClient {
	return NewClient(
		opts.Config.Instagram.BaseURL,
		&http.Client{Timeout: opts.Config.Instagram.Timeout},
		opts.Logger,
	)
}

func NewClient(baseURL string, httpClient *http.Client, log logger.Logger) *WebClient {
	return &WebClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     log.WithComponent("InstagramWeb"),
	}
}

func (c *WebClient) postURL(shortcode string) string {
	params := url.Values{}
	params.Set("__a", "1")
	params.Set("__d", "dis")
	return fmt.Sprintf("%s/p/%s/?%s", c.baseURL, url.PathEscape(shortcode), params.Encode())
}

func (c *WebClient) FetchPost(ctx context.Context, shortcode string) (*domain.Snapshot, error) {
	endpoint := c.postURL(shortcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range defaultHeaders {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Instagram request failed", "shortcode", shortcode, "error", err)
		return nil, fmt.Errorf("request post %s: %w", shortcode, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Instagram request completed",
		"shortcode", shortcode,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if err := checkResponseStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload mediaResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		c.logger.Warn("Failed to parse post response", "shortcode", shortcode, "error", err, "body_preview", preview)
		return nil, fmt.Errorf("failed to parse post response: %w", err)
	}

	if payload.RequireLogin {
		return nil, instagram.ErrPrivateAccount
	}
	if payload.GraphQL.ShortcodeMedia == nil {
		return nil, instagram.ErrPostNotFound
	}

	return toSnapshot(payload.GraphQL.ShortcodeMedia), nil
}

func checkResponseStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return instagram.ErrPostNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return instagram.ErrPrivateAccount
	case http.StatusTooManyRequests:
		return instagram.ErrRateLimited
	default:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

func toSnapshot(media *shortcodeMedia) *domain.Snapshot {
	snapshot := &domain.Snapshot{
		LikeCount:    media.EdgeMediaPreviewLike.Count,
		CommentCount: media.EdgeMediaToComment.Count,
		IsVideo:      media.IsVideo,
		MediaCount:   1,
		URL:          media.DisplayURL,
	}

	if media.EdgeMediaToParentComment != nil {
		snapshot.CommentCount = media.EdgeMediaToParentComment.Count
	}

	if len(media.EdgeMediaToCaption.Edges) > 0 {
		if text := media.EdgeMediaToCaption.Edges[0].Node.Text; text != "" {
			snapshot.Caption = &text
		}
	}

	if media.TakenAtTimestamp > 0 {
		takenAt := time.Unix(media.TakenAtTimestamp, 0).UTC()
		snapshot.TakenAt = &takenAt
	}

	if media.EdgeSidecarToChildren != nil && len(media.EdgeSidecarToChildren.Edges) > 0 {
		snapshot.MediaCount = len(media.EdgeSidecarToChildren.Edges)
		for _, edge := range media.EdgeSidecarToChildren.Edges {
			snapshot.SidecarURLs = append(snapshot.SidecarURLs, edge.Node.DisplayURL)
		}
	}

	return snapshot
}
