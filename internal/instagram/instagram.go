package instagram

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-media-service/internal/domain"
)

var (
	ErrPostNotFound   = errors.New("post not found or shortcode is invalid")
	ErrPrivateAccount = errors.New("account is private and cannot be accessed")
	ErrRateLimited    = errors.New("rate limited by instagram")
)

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go
type Client interface {
	// FetchPost reads the current metadata of the post identified by shortcode.
	FetchPost(ctx context.Context, shortcode string) (*domain.Snapshot, error)
}
