package downloaderimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/orgball2608/insta-media-service/internal/downloader"
	"github.com/orgball2608/insta-media-service/pkg/config"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// Impl downloads media one at a time into <root>/instagram/media/<post id>/.
type Impl struct {
	root       string
	httpClient *http.Client
	logger     logger.Logger
}

var _ downloader.Downloader = (*Impl)(nil)

func New(opts Opts) *Impl {
	return NewDownloader(
		opts.Config.Storage.Path,
		&http.Client{Timeout: opts.Config.Storage.DownloadTimeout},
		opts.Logger,
	)
}

func NewDownloader(root string, httpClient *http.Client, log logger.Logger) *Impl {
	return &Impl{
		root:       root,
		httpClient: httpClient,
		logger:     log.WithComponent("MediaDownloader"),
	}
}

// MediaDir returns the directory holding the media of a post.
func (d *Impl) MediaDir(postID string) string {
	return filepath.Join(d.root, "instagram", "media", postID)
}

func (d *Impl) DownloadAll(ctx context.Context, urls []string, postID string) (*downloader.Result, error) {
	dir := d.MediaDir(postID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	result := &downloader.Result{Paths: make([]string, 0, len(urls))}

	// File numbers follow the input position, so a failed item leaves a gap
	// in the names but not in result.Paths.
	for i, mediaURL := range urls {
		target := filepath.Join(dir, fmt.Sprintf("media_%d%s", i+1, FileExtension(mediaURL)))

		if err := d.download(ctx, mediaURL, target); err != nil {
			d.logger.Warn("Failed to download media", "post_id", postID, "url", mediaURL, "error", err)
			result.Failures = append(result.Failures, downloader.Failure{URL: mediaURL, Err: err})
			continue
		}

		result.Paths = append(result.Paths, target)
	}

	d.logger.Info("Media download finished",
		"post_id", postID,
		"requested", len(urls),
		"stored", len(result.Paths),
		"failed", len(result.Failures),
	)

	return result, nil
}

func (d *Impl) download(ctx context.Context, mediaURL, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tmp := target + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	_, err = io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write media: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename media file: %w", err)
	}

	return nil
}

// FileExtension guesses the media extension from substrings of the URL.
// Anything unrecognised is stored as .jpg.
func FileExtension(mediaURL string) string {
	switch {
	case strings.Contains(mediaURL, ".jpg"), strings.Contains(mediaURL, ".jpeg"):
		return ".jpg"
	case strings.Contains(mediaURL, ".png"):
		return ".png"
	case strings.Contains(mediaURL, ".mp4"):
		return ".mp4"
	default:
		return ".jpg"
	}
}
