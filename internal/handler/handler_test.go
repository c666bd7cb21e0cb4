package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-media-service/internal/domain"
	mock_downloader "github.com/orgball2608/insta-media-service/internal/downloader/mocks"
	"github.com/orgball2608/insta-media-service/internal/extractor/extractorimpl"
	mock_extractor "github.com/orgball2608/insta-media-service/internal/extractor/mocks"
	"github.com/orgball2608/insta-media-service/internal/instagram"
	mock_instagram "github.com/orgball2608/insta-media-service/internal/instagram/mocks"
	mock_post "github.com/orgball2608/insta-media-service/internal/repositories/post/mocks"
	mock_telegram "github.com/orgball2608/insta-media-service/internal/telegram/mocks"
	"github.com/orgball2608/insta-media-service/pkg/config"
	"github.com/orgball2608/insta-media-service/pkg/errors"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const postID = "3f0c6f1e-2a55-4c1e-9a43-2d6c5b1f7e10"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, rateLimit int) (*gin.Engine, *mock_extractor.MockService) {
	t.Helper()
	svc := mock_extractor.NewMockService(gomock.NewController(t))

	cfg := &config.Config{}
	cfg.App.ExtractRateLimit = rateLimit

	h := New(Opts{Extractor: svc, Config: cfg, Logger: logger.Nop()})
	return h.Router(), svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func samplePost() *domain.Post {
	return &domain.Post{
		ID:          postID,
		InstagramID: "C4abc123XYZ",
		Hashtags:    []string{},
		MediaType:   domain.MediaTypeImage,
		MediaURLs:   []string{"https://cdn.example.com/a.jpg"},
		LocalPaths:  []string{"storage/instagram/media/" + postID + "/media_1.jpg"},
	}
}

func TestRootAndHealth(t *testing.T) {
	r, _ := newTestRouter(t, 0)

	w := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Instagram Service is running", decode(t, w)["message"])

	w = do(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"status": "ok", "service": "instagram"}, decode(t, w))
}

func TestExtract(t *testing.T) {
	r, svc := newTestRouter(t, 0)
	url := "https://www.instagram.com/p/C4abc123XYZ/"

	svc.EXPECT().Extract(gomock.Any(), url, true).Return(samplePost(), nil)

	w := do(r, http.MethodPost, "/api/extract", `{"url":"`+url+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, postID, body["id"])
	assert.Equal(t, "image", body["media_type"])
	assert.Nil(t, body["caption"])
	assert.Nil(t, body["created_at"])
}

func TestExtractDownloadMediaFalse(t *testing.T) {
	r, svc := newTestRouter(t, 0)
	url := "https://www.instagram.com/reel/C4abc123XYZ/"

	svc.EXPECT().Extract(gomock.Any(), url, false).Return(samplePost(), nil)

	w := do(r, http.MethodPost, "/api/extract", `{"url":"`+url+`","download_media":false}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractBadBody(t *testing.T) {
	r, _ := newTestRouter(t, 0)

	for _, body := range []string{`{`, `{}`, `{"url":""}`, `{"url":42}`} {
		w := do(r, http.MethodPost, "/api/extract", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "invalid url",
			err:     errors.InvalidInput("Invalid Instagram URL"),
			status:  http.StatusBadRequest,
			message: "Invalid Instagram URL",
		},
		{
			name:    "post rejected by instagram",
			err:     errors.WrapWithCode(instagram.ErrPostNotFound, errors.CodeExtractionFailed, "failed to fetch post C4abc123XYZ"),
			status:  http.StatusBadRequest,
			message: "failed to fetch post C4abc123XYZ: " + instagram.ErrPostNotFound.Error(),
		},
		{
			name:    "rate limited by instagram",
			err:     errors.WrapWithCode(instagram.ErrRateLimited, errors.CodeExtractionFailed, "failed to fetch post C4abc123XYZ"),
			status:  http.StatusInternalServerError,
			message: "Extraction failed: failed to fetch post C4abc123XYZ: " + instagram.ErrRateLimited.Error(),
		},
		{
			name:    "storage failure",
			err:     stderrors.New("failed to save post C4abc123XYZ: connection reset"),
			status:  http.StatusInternalServerError,
			message: "Extraction failed: failed to save post C4abc123XYZ: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc := newTestRouter(t, 0)
			svc.EXPECT().Extract(gomock.Any(), gomock.Any(), true).Return(nil, tt.err)

			w := do(r, http.MethodPost, "/api/extract", `{"url":"https://www.instagram.com/p/C4abc123XYZ/"}`)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode(t, w)["error"])
		})
	}
}

func TestExtractUnparsableURLTouchesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := extractorimpl.New(extractorimpl.Opts{
		PostRepo:   mock_post.NewMockRepository(ctrl),
		Instagram:  mock_instagram.NewMockClient(ctrl),
		Downloader: mock_downloader.NewMockDownloader(ctrl),
		Telegram:   mock_telegram.NewMockClient(ctrl),
		Logger:     logger.Nop(),
	})
	r := New(Opts{Extractor: svc, Config: &config.Config{}, Logger: logger.Nop()}).Router()

	w := do(r, http.MethodPost, "/api/extract", `{"url":"https://www.instagram.com/explore/tags/go/"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid Instagram URL", decode(t, w)["error"])
}

func TestExtractRateLimit(t *testing.T) {
	r, svc := newTestRouter(t, 1)
	body := `{"url":"https://www.instagram.com/p/C4abc123XYZ/"}`

	svc.EXPECT().Extract(gomock.Any(), gomock.Any(), true).Return(samplePost(), nil).Times(1)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/extract", body).Code)

	w := do(r, http.MethodPost, "/api/extract", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests", decode(t, w)["error"])

	// other routes are not limited
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/health", "").Code)
}

func TestGetPost(t *testing.T) {
	r, svc := newTestRouter(t, 0)

	svc.EXPECT().Get(gomock.Any(), postID).Return(samplePost(), nil)

	w := do(r, http.MethodGet, "/api/post/"+postID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "C4abc123XYZ", decode(t, w)["instagram_id"])
}

func TestGetMedia(t *testing.T) {
	r, svc := newTestRouter(t, 0)

	svc.EXPECT().Get(gomock.Any(), postID).Return(samplePost(), nil)

	w := do(r, http.MethodGet, "/api/media/"+postID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"media_paths": []any{"storage/instagram/media/" + postID + "/media_1.jpg"},
	}, decode(t, w))
}

func TestGetMediaWithoutDownloads(t *testing.T) {
	r, svc := newTestRouter(t, 0)

	svc.EXPECT().Get(gomock.Any(), postID).Return(&domain.Post{ID: postID}, nil)

	w := do(r, http.MethodGet, "/api/media/"+postID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"media_paths":[]}`, w.Body.String())
}

func TestLookupErrors(t *testing.T) {
	notFound := errors.WrapWithCode(stderrors.New("post not found"), errors.CodeNotFound, "post not found")

	for _, route := range []string{"/api/post/", "/api/media/"} {
		t.Run(route, func(t *testing.T) {
			r, svc := newTestRouter(t, 0)

			w := do(r, http.MethodGet, route+"not-a-uuid", "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Invalid post ID", decode(t, w)["error"])

			svc.EXPECT().Get(gomock.Any(), postID).Return(nil, notFound)
			w = do(r, http.MethodGet, route+postID, "")
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Post not found", decode(t, w)["error"])

			svc.EXPECT().Get(gomock.Any(), postID).Return(nil, stderrors.New("connection reset"))
			w = do(r, http.MethodGet, route+postID, "")
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "connection reset", decode(t, w)["error"])
		})
	}
}
