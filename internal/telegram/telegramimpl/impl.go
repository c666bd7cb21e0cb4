package telegramimpl

import (
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-media-service/internal/telegram"
	"github.com/orgball2608/insta-media-service/pkg/config"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot   *tgbotapi.BotAPI
	Logger  logger.Logger
	Channel string
}

var _ telegram.Client = (*TelegramImpl)(nil)

func New(opts Opts) (*TelegramImpl, error) {
	cfg := opts.Config.Telegram
	return Connect(cfg.Token, tgbotapi.APIEndpoint, &http.Client{Timeout: cfg.Timeout}, cfg.Channel, opts.Logger)
}

// Connect creates a bot that talks to endpoint through httpClient.
// Every Bot API call, including the announcement sent after an extraction,
// is bounded by the client's timeout.
func Connect(token, endpoint string, httpClient *http.Client, channel string, log logger.Logger) (*TelegramImpl, error) {
	tgBot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, httpClient)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}

	return NewWithBot(tgBot, channel, log), nil
}

func NewWithBot(bot *tgbotapi.BotAPI, channel string, log logger.Logger) *TelegramImpl {
	return &TelegramImpl{
		TgBot:   bot,
		Logger:  log.WithComponent("Telegram"),
		Channel: channel,
	}
}

// SendMessageToDefaultChannel sends a MarkdownV2 text message to the configured channel
func (tg *TelegramImpl) SendMessageToDefaultChannel(msg string) error {
	channelName := "@" + tg.Channel
	newMsg := tgbotapi.NewMessageToChannel(channelName, msg)
	newMsg.ParseMode = tgbotapi.ModeMarkdownV2
	newMsg.DisableWebPagePreview = true

	if _, err := tg.TgBot.Send(newMsg); err != nil {
		tg.Logger.Error("Error sending message to channel",
			"channel", channelName,
			"error", err)
		return fmt.Errorf("failed to send message to channel: %w", err)
	}

	tg.Logger.Debug("Message sent to channel", "channel", channelName)
	return nil
}
