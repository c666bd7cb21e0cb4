package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-media-service/internal/downloader"
	"github.com/orgball2608/insta-media-service/internal/downloader/downloaderimpl"
	"github.com/orgball2608/insta-media-service/internal/extractor"
	"github.com/orgball2608/insta-media-service/internal/extractor/extractorimpl"
	"github.com/orgball2608/insta-media-service/internal/handler"
	instagram "github.com/orgball2608/insta-media-service/internal/instagram/fx"
	"github.com/orgball2608/insta-media-service/internal/monitor"
	repositories "github.com/orgball2608/insta-media-service/internal/repositories/fx"
	"github.com/orgball2608/insta-media-service/internal/repositories/post"
	telegram "github.com/orgball2608/insta-media-service/internal/telegram/fx"
	"github.com/orgball2608/insta-media-service/pkg/config"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"github.com/orgball2608/insta-media-service/pkg/pgx"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
	),
	repositories.Module,
	instagram.Module,
	telegram.Module,
	fx.Provide(
		fx.Annotate(
			downloaderimpl.New,
			fx.As(new(downloader.Downloader)),
		),
		fx.Annotate(
			extractorimpl.New,
			fx.As(new(extractor.Service)),
		),
		handler.New,
	),
	fx.Invoke(monitor.Register),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, postRepo post.Repository, h *handler.Handler) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := postRepo.EnsureSchema(ctx); err != nil {
				return err
			}

			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}

			log.Info("Starting server", "port", cfg.App.Port, "env", cfg.App.Env)

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server stopped unexpectedly", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server")
			return srv.Shutdown(ctx)
		},
	})
}
