package instagramimpl

import (
	"context"
	"errors"
	"sync"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-media-service/internal/instagram"
	"github.com/orgball2608/insta-media-service/pkg/config"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

// IgImpl reads posts through the private API with a logged in account.
type IgImpl struct {
	Client *goinsta.Instagram
	Logger logger.Logger
	Config *config.Config

	mu       sync.Mutex
	loggedIn bool
}

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *IgImpl {
	ig := &IgImpl{
		Client: goinsta.New(opts.Config.Instagram.User, opts.Config.Instagram.Pass),
		Logger: opts.Logger.WithComponent("InstagramAPI"),
		Config: opts.Config,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			// A failed login is retried on the first lookup; the HTTP API stays up.
			if err := ig.ensureLoggedIn(); err != nil {
				ig.Logger.Error("Instagram login error", "error", err)
			}
			return nil
		},
	})

	return ig
}

var _ instagram.Client = (*IgImpl)(nil)

func (ig *IgImpl) ensureLoggedIn() error {
	ig.mu.Lock()
	defer ig.mu.Unlock()

	if ig.loggedIn {
		return nil
	}
	if err := ig.Login(); err != nil {
		return err
	}
	ig.loggedIn = true
	return nil
}

// dropSessionOn forgets the login when Instagram rejected the session,
// so the next lookup logs in again. It reports whether the session was dropped.
func (ig *IgImpl) dropSessionOn(err error) bool {
	if !errors.Is(err, goinsta.ErrLoginRequired) && !errors.Is(err, goinsta.ErrLoggedOut) {
		return false
	}

	ig.mu.Lock()
	ig.loggedIn = false
	ig.mu.Unlock()

	ig.Logger.Warn("Instagram session expired, will log in again", "error", err)
	return true
}
