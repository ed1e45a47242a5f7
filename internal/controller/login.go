// ABOUTME: Login controller: submits credentials and hands off the session
// ABOUTME: Stores the issued token in both session stores, then navigates

package controller

import (
	"context"
	"log/slog"

	"github.com/markalston/realm-client/internal/client"
)

// LoginController handles login form submissions
type LoginController struct {
	api      AuthAPI
	tokens   TokenSink
	reporter Reporter
	nav      Navigator
	guard    inflight
}

// NewLoginController creates a login controller
func NewLoginController(api AuthAPI, tokens TokenSink, reporter Reporter, nav Navigator) *LoginController {
	return &LoginController{api: api, tokens: tokens, reporter: reporter, nav: nav}
}

// Pending reports whether a login is awaiting a response
func (c *LoginController) Pending() bool {
	return c.guard.Busy()
}

// Submit sends the credentials. On success the token is stored and the
// player is sent to the redirect URL the server returned.
func (c *LoginController) Submit(ctx context.Context, username, password string) error {
	if !c.guard.acquire() {
		return ErrInFlight
	}
	defer c.guard.release()

	res, err := c.api.Login(ctx, client.Credentials{Username: username, Password: password})
	if err != nil {
		if msg, ok := client.APIMessage(err); ok {
			c.reporter.ShowError(fallback(msg, MsgLoginFailed))
			return err
		}
		slog.Error("Login request failed", "username", username, "error", err)
		reportFailure(c.reporter, "login", err)
		return err
	}

	if err := c.tokens.SetToken(ctx, res.AccessToken); err != nil {
		slog.Error("Failed to store access token", "error", err)
		c.reporter.ReportFailure("login", err)
		return err
	}
	if mem, ok := c.tokens.(usernameMemory); ok {
		if err := mem.RememberUsername(ctx, username); err != nil {
			slog.Warn("Failed to remember username", "error", err)
		}
	}

	slog.Info("Logged in", "username", username)
	c.nav.Navigate(res.RedirectURL)
	return nil
}
