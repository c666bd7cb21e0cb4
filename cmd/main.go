package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orgball2608/insta-media-service/internal/app"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := logger.New(logger.Opts{Env: os.Getenv("APP_ENV")})

	service := fx.New(
		fx.Logger(log),
		app.Module,
	)

	// The start timeout covers the retried postgres ping and the Instagram login.
	startCtx, cancelStart := context.WithTimeout(context.Background(), time.Minute)
	defer cancelStart()

	if err := service.Start(startCtx); err != nil {
		log.Error("Failed to start media service", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Shutdown signal received")

	stopCtx, cancelStop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelStop()

	if err := service.Stop(stopCtx); err != nil {
		log.Error("Failed to stop media service", "error", err)
		os.Exit(1)
	}
}
