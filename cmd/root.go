// ABOUTME: Root command for the realm CLI
// ABOUTME: Handles global flags, configuration and session wiring

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/realm-client/internal/client"
	"github.com/markalston/realm-client/internal/config"
	"github.com/markalston/realm-client/internal/controller"
	"github.com/markalston/realm-client/internal/logger"
	"github.com/markalston/realm-client/internal/session"
	"github.com/markalston/realm-client/internal/storage"
)

var (
	authURL    string
	gameURL    string
	stateDir   string
	jsonOutput bool
	ephemeral  bool
)

// Exit codes
const (
	exitOK        = 0
	exitAppError  = 1
	exitTransport = 2
)

// dotenvFile is read from the working directory when present
const dotenvFile = ".env"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "realm",
	Short: "Terminal client for the realm resource game",
	Long: `realm logs you in to the realm game, shows your resources and lets you
collect them and upgrade buildings from the terminal.

Exit codes:
  0 - Success
  1 - The server rejected the request, or input was invalid
  2 - Error (connectivity, timeout, configuration)

Environment Variables:
  REALM_AUTH_URL       Auth service URL (default: http://localhost:5000)
  REALM_GAME_URL       Game service URL (default: http://localhost:5001)
  REALM_STATE_DIR      Session directory (default: user config dir /realm)
  REALM_HTTP_TIMEOUT   Per-request timeout (default: 30s)
  REALM_POLL_INTERVAL  Resource refresh interval for play and resources --watch
  REALM_LOG_LEVEL      debug, info, warn, error (default: info)
  REALM_LOG_FORMAT     text, json (default: text)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&authURL, "auth-url", "", "Auth service URL (overrides REALM_AUTH_URL)")
	rootCmd.PersistentFlags().StringVar(&gameURL, "game-url", "", "Game service URL (overrides REALM_GAME_URL)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Session directory (overrides REALM_STATE_DIR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep the session in memory only")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig returns the configuration with flags applied over env and defaults
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(dotenvFile)
	if err != nil {
		return nil, err
	}
	if authURL != "" {
		cfg.AuthURL = authURL
	}
	if gameURL != "" {
		cfg.GameURL = gameURL
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app is everything a command needs to drive the controllers
type app struct {
	cfg     *config.Config
	store   storage.Store
	session *session.Session
	client  *client.Client
}

// openApp loads configuration and opens the session store. logOut receives
// slog output; nil sends it to stderr.
func openApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if logOut == nil {
		logOut = os.Stderr
	}
	logger.Init(logOut, cfg.LogLevel, cfg.LogFormat)

	var store storage.Store
	if ephemeral {
		store = storage.NewMemory()
	} else {
		store, err = storage.OpenSQLite(ctx, cfg.SessionPath())
		if err != nil {
			return nil, err
		}
	}

	jar, err := session.NewCookieJar(ctx, cfg.GameURL, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	c := client.New(cfg.AuthURL, cfg.GameURL,
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithCookieJar(jar),
	)
	slog.Debug("Session opened", "auth_url", cfg.AuthURL, "game_url", cfg.GameURL, "ephemeral", ephemeral)

	return &app{
		cfg:     cfg,
		store:   store,
		session: session.New(store, jar),
		client:  c,
	}, nil
}

// Close releases the session store
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close session store", "error", err)
	}
}

// exitCode maps a command error to the process exit code
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case client.IsTransport(err), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return exitTransport
	default:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return exitAppError
		}
		if errors.Is(err, controller.ErrPasswordMismatch) || errors.Is(err, client.ErrUnknownBuilding) ||
			errors.Is(err, session.ErrNoToken) || errors.Is(err, errUsage) {
			return exitAppError
		}
		return exitTransport
	}
}

// errUsage marks invalid input caught before any request
var errUsage = errors.New("invalid input")

// openOrFail opens the app and writes a config error to w
func openOrFail(ctx context.Context, w io.Writer) (*app, int) {
	a, err := openApp(ctx, nil)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, exitTransport
	}
	return a, exitOK
}
