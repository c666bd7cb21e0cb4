package fx

import (
	"github.com/orgball2608/insta-media-service/internal/telegram"
	"github.com/orgball2608/insta-media-service/internal/telegram/telegramimpl"
	"github.com/orgball2608/insta-media-service/pkg/config"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("telegram",
	fx.Provide(NewClient),
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// NewClient connects the bot when a token and channel are configured.
// Otherwise notifications are dropped.
func NewClient(opts Opts) (telegram.Client, error) {
	if opts.Config.Telegram.Token == "" || opts.Config.Telegram.Channel == "" {
		opts.Logger.Info("Telegram notifications disabled")
		return telegram.Nop{}, nil
	}

	client, err := telegramimpl.New(telegramimpl.Opts{
		Config: opts.Config,
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
