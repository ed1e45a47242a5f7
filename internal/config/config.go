// ABOUTME: Configuration loader for the realm client
// ABOUTME: Reads REALM_* environment variables and an optional .env file

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable name
const Prefix = "REALM_"

type Config struct {
	// Services
	AuthURL string `env:"AUTH_URL" envDefault:"http://localhost:5000"`
	GameURL string `env:"GAME_URL" envDefault:"http://localhost:5001"`

	// Client
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"0s"` // 0 disables polling

	// StateDir holds the session database and the TUI debug log
	StateDir string `env:"STATE_DIR"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the configuration. Values already in the environment win over
// the .env files, which are optional.
func Load(dotenvFiles ...string) (*Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.StateDir == "" {
		dir, err := DefaultStateDir()
		if err != nil {
			return nil, err
		}
		cfg.StateDir = dir
	}

	cfg.AuthURL = ensureScheme(cfg.AuthURL)
	cfg.GameURL = ensureScheme(cfg.GameURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags may also have set
func (c *Config) Validate() error {
	for _, u := range []struct {
		name  string
		value string
	}{
		{Prefix + "AUTH_URL", c.AuthURL},
		{Prefix + "GAME_URL", c.GameURL},
	} {
		parsed, err := url.Parse(u.value)
		if err != nil || parsed.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", u.name, u.value)
		}
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%sHTTP_TIMEOUT must be positive, got %s", Prefix, c.HTTPTimeout)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("%sPOLL_INTERVAL must not be negative, got %s", Prefix, c.PollInterval)
	}
	return nil
}

// SessionPath is the location of the session database
func (c *Config) SessionPath() string {
	return filepath.Join(c.StateDir, "session.db")
}

// DefaultStateDir returns the per-user config directory for realm
func DefaultStateDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "realm"), nil
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(u string) string {
	if u == "" {
		return u
	}
	if !strings.Contains(u, "://") {
		return "http://" + u
	}
	return u
}
