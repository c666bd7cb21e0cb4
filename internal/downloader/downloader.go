package downloader

import (
	"context"
)

// Failure records a media URL that could not be stored.
type Failure struct {
	URL string
	Err error
}

// Result of a download run. Paths holds the stored files in input order and
// skips failed items, so it may be shorter than the input.
type Result struct {
	Paths    []string
	Failures []Failure
}

//go:generate go run go.uber.org/mock/mockgen -source=downloader.go -destination=mocks/mock.go
type Downloader interface {
	// DownloadAll stores every URL under the media directory of postID. Only
	// an unusable media directory is reported as an error.
	DownloadAll(ctx context.Context, urls []string, postID string) (*Result, error)
}
