package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/orgball2608/insta-media-service/internal/domain"
	"github.com/orgball2608/insta-media-service/internal/migrations"
	"github.com/orgball2608/insta-media-service/internal/repositories"
	"github.com/orgball2608/insta-media-service/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

const uniqueViolation = "23505"

var postColumns = []string{
	"id",
	"instagram_id",
	"caption",
	"hashtags",
	"media_type",
	"media_urls",
	"likes",
	"comments",
	"local_paths",
	"created_at",
}

// DB is the subset of *pgxpool.Pool used by the repository.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Pgx struct {
	pg     DB
	logger logger.Logger
}

func NewPgx(pg DB, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// EnsureSchema creates the posts table and its shortcode index if absent
func (p *Pgx) EnsureSchema(ctx context.Context) error {
	for _, stmt := range migrations.PostsSchema {
		if _, err := p.pg.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure %s schema: %w", migrations.PostsTable, err)
		}
	}
	return nil
}

// Create inserts the post as a new row
func (p *Pgx) Create(ctx context.Context, post domain.Post) error {
	hashtags, err := encodeList(post.Hashtags)
	if err != nil {
		return err
	}
	mediaURLs, err := encodeList(post.MediaURLs)
	if err != nil {
		return err
	}
	localPaths, err := encodeList(post.LocalPaths)
	if err != nil {
		return err
	}

	query, args, err := repositories.SqBuilder.
		Insert(migrations.PostsTable).
		Columns(postColumns...).
		Values(
			post.ID,
			post.InstagramID,
			post.Caption,
			hashtags,
			string(post.MediaType),
			mediaURLs,
			post.Likes,
			post.Comments,
			localPaths,
			post.CreatedAt,
		).ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	p.logger.Debug("Post created", "id", post.ID, "instagram_id", post.InstagramID)
	return nil
}

// GetByID returns the post with the given ID
func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return p.getOne(ctx, sq.Eq{"id": id})
}

// GetByInstagramID returns the post extracted from the given shortcode
func (p *Pgx) GetByInstagramID(ctx context.Context, instagramID string) (*domain.Post, error) {
	return p.getOne(ctx, sq.Eq{"instagram_id": instagramID})
}

func (p *Pgx) getOne(ctx context.Context, where sq.Eq) (*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns...).
		From(migrations.PostsTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var (
		post       domain.Post
		mediaType  string
		hashtags   []byte
		mediaURLs  []byte
		localPaths []byte
		createdAt  *time.Time
	)
	err = p.pg.QueryRow(ctx, query, args...).Scan(
		&post.ID,
		&post.InstagramID,
		&post.Caption,
		&hashtags,
		&mediaType,
		&mediaURLs,
		&post.Likes,
		&post.Comments,
		&localPaths,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.MediaType = domain.MediaType(mediaType)
	post.CreatedAt = createdAt

	if post.Hashtags, err = decodeList(hashtags); err != nil {
		return nil, fmt.Errorf("failed to decode hashtags of post %s: %w", post.ID, err)
	}
	if post.MediaURLs, err = decodeList(mediaURLs); err != nil {
		return nil, fmt.Errorf("failed to decode media urls of post %s: %w", post.ID, err)
	}
	if post.LocalPaths, err = decodeList(localPaths); err != nil {
		return nil, fmt.Errorf("failed to decode local paths of post %s: %w", post.ID, err)
	}

	return &post, nil
}

// encodeList renders a JSON array, never null
func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(raw), nil
}

func decodeList(raw []byte) ([]string, error) {
	values := []string{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
