package config

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Env               string        `env:"APP_ENV" env-default:"development"`
		Port              int           `env:"SERVICE_PORT" env-default:"8082" env-description:"HTTP listen port"`
		SentryUrl         string        `env:"SENTRY_URL"`
		ExtractRateLimit  int           `env:"EXTRACT_RATE_LIMIT" env-default:"0" env-description:"extract requests per minute per client, 0 disables"`
		PoolStatsInterval time.Duration `env:"POOL_STATS_INTERVAL" env-default:"5m" env-description:"period of connection pool stats logging, 0 disables"`
	}
	Postgres struct {
		Host    string `env:"DB_HOST" env-default:"localhost"`
		Port    int    `env:"DB_PORT" env-default:"5432"`
		User    string `env:"DB_USER" env-default:"admin"`
		Pass    string `env:"DB_PASSWORD" env-default:"password123"`
		Name    string `env:"DB_NAME" env-default:"mediavault"`
		SslMode string `env:"DB_SSL_MODE" env-default:"disable"`
	}
	Storage struct {
		Path            string        `env:"STORAGE_PATH" env-default:"./storage" env-description:"root directory for downloaded media"`
		DownloadTimeout time.Duration `env:"DOWNLOAD_TIMEOUT" env-default:"0"`
	}
	Instagram struct {
		User        string        `env:"INSTAGRAM_USER" env-description:"enables the authenticated API client when set"`
		Pass        string        `env:"INSTAGRAM_PASS"`
		SessionPath string        `env:"INSTAGRAM_SESSION_PATH" env-default:"./goinsta-session"`
		BaseURL     string        `env:"INSTAGRAM_BASE_URL" env-default:"https://www.instagram.com"`
		Timeout     time.Duration `env:"INSTAGRAM_TIMEOUT" env-default:"30s"`
	}
	Telegram struct {
		Token   string        `env:"TELEGRAM_TOKEN"`
		Channel string        `env:"TELEGRAM_CHANNEL"`
		Timeout time.Duration `env:"TELEGRAM_TIMEOUT" env-default:"10s"`
	}
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// New reads the configuration from the environment once per process.
// A .env file in the working directory is loaded first when present.
func New() (*Config, error) {
	once.Do(func() {
		_ = godotenv.Load()

		c := &Config{}
		if err := cleanenv.ReadEnv(c); err != nil {
			help, _ := cleanenv.GetDescription(c, nil)
			loadErr = fmt.Errorf("failed to read configuration: %w\n%s", err, help)
			return
		}
		cfg = c
	})
	return cfg, loadErr
}

// GetDSN returns the postgres connection URL.
func (c *Config) GetDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Postgres.User, c.Postgres.Pass),
		Host:     fmt.Sprintf("%s:%d", c.Postgres.Host, c.Postgres.Port),
		Path:     c.Postgres.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Postgres.SslMode),
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
