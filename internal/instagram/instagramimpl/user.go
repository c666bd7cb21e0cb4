package instagramimpl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Davincible/goinsta/v3"
)

const loginAttempts = 3

// Login connects to Instagram, first from the exported session file and
// then with the configured credentials. A fresh session is exported again.
func (ig *IgImpl) Login() error {
	if err := ig.ReloadSession(); err == nil {
		if ig.validateSession() {
			ig.Logger.Info("Logged in using existing session")
			return nil
		}
		ig.Logger.Warn("Session loaded but appears to be invalid, attempting fresh login")
	}

	ig.Logger.Info("Attempting to log in with credentials", "user", ig.Config.Instagram.User)
	ig.Client = goinsta.New(ig.Config.Instagram.User, ig.Config.Instagram.Pass)

	var loginErr error
	for attempt := 1; attempt <= loginAttempts; attempt++ {
		loginErr = ig.Client.Login()
		if loginErr == nil {
			break
		}

		ig.Logger.Error("Login attempt failed", "attempt", attempt, "error", loginErr)
		if attempt < loginAttempts {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}
	if loginErr != nil {
		return fmt.Errorf("failed to log in after %d attempts: %w", loginAttempts, loginErr)
	}

	ig.Logger.Info("Logged in with credentials")

	if err := ig.saveSession(); err != nil {
		ig.Logger.Warn("Failed to save Instagram session", "error", err)
	}

	return nil
}

// ReloadSession imports a previously exported session.
func (ig *IgImpl) ReloadSession() error {
	path := ig.Config.Instagram.SessionPath
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("session file not found: %w", err)
	}

	client, err := goinsta.Import(path)
	if err != nil {
		return fmt.Errorf("failed to import session: %w", err)
	}

	ig.Client = client
	return nil
}

// validateSession syncs the account with a timeout; the client is not context aware.
func (ig *IgImpl) validateSession() bool {
	if ig.Client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan bool, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ig.Logger.Error("Panic in Instagram session validation", "panic", r)
				done <- false
			}
		}()
		done <- ig.Client.Account.Sync() == nil
	}()

	select {
	case valid := <-done:
		return valid
	case <-ctx.Done():
		ig.Logger.Warn("Session validation timed out")
		return false
	}
}

func (ig *IgImpl) saveSession() error {
	if ig.Client == nil {
		return fmt.Errorf("no active Instagram session to save")
	}

	path := ig.Config.Instagram.SessionPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := ig.Client.Export(path); err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}

	ig.Logger.Info("Instagram session saved", "path", path)
	return nil
}
