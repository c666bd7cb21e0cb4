package fx

import (
	"github.com/orgball2608/insta-media-service/internal/instagram"
	"github.com/orgball2608/insta-media-service/internal/instagram/instagramimpl"
	"github.com/orgball2608/insta-media-service/internal/instagram/webimpl"
	"github.com/orgball2608/insta-media-service/pkg/config"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("instagram",
	fx.Provide(NewClient),
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

// NewClient picks the authenticated API client when credentials are
// configured and the anonymous web client otherwise.
func NewClient(opts Opts) instagram.Client {
	if opts.Config.Instagram.User != "" {
		opts.Logger.Info("Using authenticated Instagram client", "user", opts.Config.Instagram.User)
		return instagramimpl.New(instagramimpl.Opts{
			LC:     opts.LC,
			Config: opts.Config,
			Logger: opts.Logger,
		})
	}

	opts.Logger.Info("Using anonymous Instagram web client", "base_url", opts.Config.Instagram.BaseURL)
	return webimpl.New(webimpl.Opts{
		Config: opts.Config,
		Logger: opts.Logger,
	})
}
