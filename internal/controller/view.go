// ABOUTME: View interfaces the controllers write their results to
// ABOUTME: Implemented by the CLI printer, the TUI and the test Recorder

package controller

import (
	"context"
	"errors"

	"github.com/markalston/realm-client/internal/client"
)

// Reporter is the single sink for everything a controller tells the player
type Reporter interface {
	// ShowError displays a validation or server-provided error message
	ShowError(msg string)
	// ShowStatus displays the outcome of a game action
	ShowStatus(msg string)
	// Alert displays a message the player must acknowledge
	Alert(msg string)
	// ReportFailure is called for transport and decoding failures. Implementations
	// show MsgServerError; the controller has already logged err.
	ReportFailure(action string, err error)
}

// reportFailure forwards err to r unless the caller abandoned the request
func reportFailure(r Reporter, action string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	r.ReportFailure(action, err)
}

// Navigator moves the player to another page
type Navigator interface {
	Navigate(url string)
}

// ResourceView displays the resource counters
type ResourceView interface {
	ShowResources(state client.ResourceState)
}

// TokenSource provides the current access token
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenSink stores a freshly issued access token
type TokenSink interface {
	SetToken(ctx context.Context, token string) error
}

// usernameMemory is optionally implemented by a TokenSink to prefill the next login
type usernameMemory interface {
	RememberUsername(ctx context.Context, username string) error
}

// AuthAPI is the subset of the client used by login and registration
type AuthAPI interface {
	Login(ctx context.Context, creds client.Credentials) (*client.AuthResult, error)
	Register(ctx context.Context, creds client.Credentials) (*client.RegisterResult, error)
}

// GameAPI is the subset of the client used by the resource controller
type GameAPI interface {
	Resources(ctx context.Context, token string) (*client.ResourceState, error)
	CollectResources(ctx context.Context, token string) (*client.CollectResult, error)
	UpgradeBuilding(ctx context.Context, token, building string) (*client.BuildResult, error)
}
