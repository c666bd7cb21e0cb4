package extractor

import (
	"context"

	"github.com/orgball2608/insta-media-service/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock.go
type Service interface {
	// Extract returns the stored post for the shortcode in url, scraping and
	// storing it on first sight. Media is downloaded only when downloadMedia is set.
	Extract(ctx context.Context, url string, downloadMedia bool) (*domain.Post, error)

	// Get returns a stored post by its ID
	Get(ctx context.Context, id string) (*domain.Post, error)
}
