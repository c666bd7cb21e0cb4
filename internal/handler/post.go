package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgball2608/insta-media-service/internal/domain"
	"github.com/orgball2608/insta-media-service/internal/instagram"
	"github.com/orgball2608/insta-media-service/pkg/errors"
)

type extractRequest struct {
	URL           string `json:"url" binding:"required"`
	DownloadMedia *bool  `json:"download_media"`
}

func (r extractRequest) downloadMedia() bool {
	return r.DownloadMedia == nil || *r.DownloadMedia
}

func (h *Handler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	post, err := h.extractor.Extract(c.Request.Context(), req.URL, req.downloadMedia())
	if err != nil {
		switch {
		case errors.IsInvalidInput(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": errors.GetMessage(err)})
		case errors.IsExtractionFailed(err) && errors.Is(err, instagram.ErrPostNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Extraction failed", "url", req.URL, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Extraction failed: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) GetPost(c *gin.Context) {
	post, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) GetMedia(c *gin.Context) {
	post, ok := h.lookup(c)
	if !ok {
		return
	}

	paths := post.LocalPaths
	if paths == nil {
		paths = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"media_paths": paths})
}

// lookup resolves the :post_id parameter, writing the error response itself
// when it returns false.
func (h *Handler) lookup(c *gin.Context) (*domain.Post, bool) {
	id := c.Param("post_id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return nil, false
	}

	post, err := h.extractor.Get(c.Request.Context(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return nil, false
		}
		h.logger.Error("Failed to get post", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	return post, true
}
