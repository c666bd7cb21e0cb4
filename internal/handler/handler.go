package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-media-service/internal/extractor"
	"github.com/orgball2608/insta-media-service/internal/ratelimit"
	"github.com/orgball2608/insta-media-service/pkg/config"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Extractor extractor.Service
	Config    *config.Config
	Logger    logger.Logger
}

type Handler struct {
	extractor extractor.Service
	limiter   ratelimit.Limiter
	logger    logger.Logger
}

func New(opts Opts) *Handler {
	h := &Handler{
		extractor: opts.Extractor,
		logger:    opts.Logger.WithComponent("HTTP"),
	}

	if perMinute := opts.Config.App.ExtractRateLimit; perMinute > 0 {
		h.limiter = ratelimit.NewInMemoryLimiter(perMinute, time.Minute, perMinute)
	}

	return h
}

// Router builds the gin engine serving the public API.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogging(h.logger))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Instagram Service is running"})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		extract := []gin.HandlerFunc{h.Extract}
		if h.limiter != nil {
			extract = append([]gin.HandlerFunc{RateLimit(h.limiter)}, extract...)
		}
		api.POST("/extract", extract...)

		api.GET("/post/:post_id", h.GetPost)
		api.GET("/media/:post_id", h.GetMedia)
	}

	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "instagram"})
}
