// ABOUTME: Registration controller: validates confirmation and creates the account
// ABOUTME: Sends the player to the login page on success

package controller

import (
	"context"
	"log/slog"
	"strings"

	"github.com/markalston/realm-client/internal/client"
)

// RegisterController handles registration form submissions
type RegisterController struct {
	api      AuthAPI
	reporter Reporter
	nav      Navigator
	guard    inflight
}

// NewRegisterController creates a registration controller
func NewRegisterController(api AuthAPI, reporter Reporter, nav Navigator) *RegisterController {
	return &RegisterController{api: api, reporter: reporter, nav: nav}
}

// Pending reports whether a registration is awaiting a response
func (c *RegisterController) Pending() bool {
	return c.guard.Busy()
}

// Submit registers a new account. A mismatched confirmation is rejected
// before any request is made.
func (c *RegisterController) Submit(ctx context.Context, username, password, confirm string) error {
	username = strings.TrimSpace(username)

	if password != confirm {
		c.reporter.ShowError(MsgPasswordMismatch)
		return ErrPasswordMismatch
	}

	if !c.guard.acquire() {
		return ErrInFlight
	}
	defer c.guard.release()

	res, err := c.api.Register(ctx, client.Credentials{Username: username, Password: password})
	if err != nil {
		if msg, ok := client.APIMessage(err); ok {
			c.reporter.ShowError(fallback(msg, MsgRegisterFailed))
			return err
		}
		slog.Error("Registration request failed", "username", username, "error", err)
		reportFailure(c.reporter, "register", err)
		return err
	}

	slog.Info("Registered", "username", username)
	c.reporter.Alert(MsgRegistered)
	c.nav.Navigate(fallback(res.RedirectURL, DefaultLoginPath))
	return nil
}
