package post

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/orgball2608/insta-media-service/internal/domain"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectByID          = `SELECT (.+) FROM instagram_posts WHERE id = \$1 LIMIT 1`
	selectByInstagramID = `SELECT (.+) FROM instagram_posts WHERE instagram_id = \$1 LIMIT 1`
)

func newRepo(t *testing.T) (*Pgx, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPgx(mock, logger.Nop()), mock
}

func strPtr(s string) *string { return &s }

// anyArgs matches n arguments of any value
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS instagram_posts`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS instagram_posts_instagram_id_key`).
		WillReturnResult(pgxmock.NewResult("CREATE INDEX", 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS instagram_posts`).
		WillReturnError(errors.New("permission denied"))

	err := repo.EnsureSchema(context.Background())
	assert.ErrorContains(t, err, "permission denied")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	takenAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	post := domain.Post{
		ID:          "3f0c6f1e-2a55-4c1e-9a43-2d6c5b1f7e10",
		InstagramID: "C4abc123XYZ",
		Caption:     strPtr("Sunset #travel #beach"),
		Hashtags:    []string{"travel", "beach"},
		MediaType:   domain.MediaTypeImage,
		MediaURLs:   []string{"https://cdn.example.com/a.jpg"},
		Likes:       120,
		Comments:    7,
		LocalPaths:  nil,
		CreatedAt:   &takenAt,
	}

	mock.ExpectExec(`INSERT INTO instagram_posts`).
		WithArgs(
			post.ID,
			post.InstagramID,
			post.Caption,
			`["travel","beach"]`,
			"image",
			`["https://cdn.example.com/a.jpg"]`,
			120,
			7,
			`[]`,
			post.CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), post))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO instagram_posts`).
		WithArgs(anyArgs(len(postColumns))...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "instagram_posts_instagram_id_key"})

	err := repo.Create(context.Background(), domain.Post{ID: "id-1", InstagramID: "C4abc123XYZ"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFailure(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO instagram_posts`).
		WithArgs(anyArgs(len(postColumns))...).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), domain.Post{ID: "id-1", InstagramID: "C4abc123XYZ"})
	assert.NotErrorIs(t, err, ErrAlreadyExists)
	assert.ErrorContains(t, err, "failed to create post")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepo(t)
	createdAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	rows := pgxmock.NewRows(postColumns).AddRow(
		"id-1",
		"C4abc123XYZ",
		strPtr("two pics #one"),
		[]byte(`["one"]`),
		"carousel",
		[]byte(`["https://cdn.example.com/1.jpg","https://cdn.example.com/2.jpg"]`),
		10,
		2,
		[]byte(`["storage/instagram/media/id-1/media_1.jpg"]`),
		&createdAt,
	)
	mock.ExpectQuery(selectByID).WithArgs("id-1").WillReturnRows(rows)

	post, err := repo.GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "id-1", post.ID)
	assert.Equal(t, "C4abc123XYZ", post.InstagramID)
	require.NotNil(t, post.Caption)
	assert.Equal(t, "two pics #one", *post.Caption)
	assert.Equal(t, []string{"one"}, post.Hashtags)
	assert.Equal(t, domain.MediaTypeCarousel, post.MediaType)
	assert.Equal(t, []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"}, post.MediaURLs)
	assert.Equal(t, 10, post.Likes)
	assert.Equal(t, 2, post.Comments)
	assert.Equal(t, []string{"storage/instagram/media/id-1/media_1.jpg"}, post.LocalPaths)
	require.NotNil(t, post.CreatedAt)
	assert.True(t, createdAt.Equal(*post.CreatedAt))
}

func TestGetByInstagramIDNullColumns(t *testing.T) {
	repo, mock := newRepo(t)

	rows := pgxmock.NewRows(postColumns).AddRow(
		"id-2",
		"C4abc123XYZ",
		(*string)(nil),
		[]byte(nil),
		"video",
		[]byte(`["https://cdn.example.com/v.jpg"]`),
		0,
		0,
		[]byte(`null`),
		(*time.Time)(nil),
	)
	mock.ExpectQuery(selectByInstagramID).WithArgs("C4abc123XYZ").WillReturnRows(rows)

	post, err := repo.GetByInstagramID(context.Background(), "C4abc123XYZ")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Nil(t, post.Caption)
	assert.Nil(t, post.CreatedAt)
	assert.NotNil(t, post.Hashtags)
	assert.Empty(t, post.Hashtags)
	assert.NotNil(t, post.LocalPaths)
	assert.Empty(t, post.LocalPaths)
	assert.Equal(t, domain.MediaTypeVideo, post.MediaType)
}

func TestGetNotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(selectByID).WithArgs("missing").WillReturnRows(pgxmock.NewRows(postColumns))
	mock.ExpectQuery(selectByInstagramID).WithArgs("missing").WillReturnRows(pgxmock.NewRows(postColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByInstagramID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCorruptList(t *testing.T) {
	repo, mock := newRepo(t)

	rows := pgxmock.NewRows(postColumns).AddRow(
		"id-3", "C4abc123XYZ", (*string)(nil), []byte(`{"not":"a list"}`), "image",
		[]byte(`[]`), 0, 0, []byte(`[]`), (*time.Time)(nil),
	)
	mock.ExpectQuery(selectByID).WithArgs("id-3").WillReturnRows(rows)

	_, err := repo.GetByID(context.Background(), "id-3")
	assert.ErrorContains(t, err, "failed to decode hashtags")
	require.NoError(t, mock.ExpectationsWereMet())
}
