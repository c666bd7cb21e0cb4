package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-media-service/pkg/config"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

// PoolStater is satisfied by *pgxpool.Pool.
type PoolStater interface {
	Stat() *pgxpool.Stat
}

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Pool   *pgxpool.Pool
	Config *config.Config
	Logger logger.Logger
}

// PoolStats periodically logs connection pool usage.
type PoolStats struct {
	pool      PoolStater
	interval  time.Duration
	logger    logger.Logger
	scheduler gocron.Scheduler
}

func NewPoolStats(pool PoolStater, interval time.Duration, log logger.Logger) *PoolStats {
	return &PoolStats{
		pool:     pool,
		interval: interval,
		logger:   log.WithComponent("PoolStats"),
	}
}

// Register schedules pool stats logging for the lifetime of the app.
func Register(opts Opts) {
	stats := NewPoolStats(opts.Pool, opts.Config.App.PoolStatsInterval, opts.Logger)

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return stats.Start()
		},
		OnStop: func(context.Context) error {
			return stats.Stop()
		},
	})
}

// Start does nothing when the interval is not positive.
func (p *PoolStats) Start() error {
	if p.interval <= 0 {
		p.logger.Debug("Pool stats logging disabled")
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create pool stats scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(p.Log),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("failed to schedule pool stats job: %w", err)
	}

	scheduler.Start()
	p.scheduler = scheduler
	p.logger.Info("Pool stats logging scheduled", "interval", p.interval.String())
	return nil
}

func (p *PoolStats) Stop() error {
	if p.scheduler == nil {
		return nil
	}
	return p.scheduler.Shutdown()
}

// Log writes a single snapshot of the pool counters.
func (p *PoolStats) Log() {
	stat := p.pool.Stat()
	p.logger.Info("Postgres pool stats",
		"total_conns", stat.TotalConns(),
		"idle_conns", stat.IdleConns(),
		"acquired_conns", stat.AcquiredConns(),
		"max_conns", stat.MaxConns(),
		"acquire_count", stat.AcquireCount(),
		"empty_acquire_count", stat.EmptyAcquireCount(),
		"acquire_duration", stat.AcquireDuration().String(),
	)
}
