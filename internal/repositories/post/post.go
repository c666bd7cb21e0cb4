package post

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-media-service/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("post already exists")
	ErrNotFound      = errors.New("post not found")
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// EnsureSchema creates the posts table when it is missing
	EnsureSchema(ctx context.Context) error

	// Create inserts a new post. It never overwrites an existing row
	Create(ctx context.Context, post domain.Post) error

	// GetByID returns the post with the given ID or ErrNotFound
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// GetByInstagramID returns the post extracted from the given shortcode or ErrNotFound
	GetByInstagramID(ctx context.Context, instagramID string) (*domain.Post, error)
}
