// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration and exit codes

package cmd

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/markalston/realm-client/internal/client"
	"github.com/markalston/realm-client/internal/controller"
	"github.com/markalston/realm-client/internal/session"
)

func TestLoadConfig_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AuthURL != "http://localhost:5000" {
		t.Errorf("expected default auth URL, got %s", cfg.AuthURL)
	}
	if cfg.GameURL != "http://localhost:5001" {
		t.Errorf("expected default game URL, got %s", cfg.GameURL)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("REALM_AUTH_URL", "http://auth.example.com")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AuthURL != "http://auth.example.com" {
		t.Errorf("expected env auth URL, got %s", cfg.AuthURL)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("REALM_GAME_URL", "http://game.example.com")
	gameURL = "http://flag-override.example.com"
	stateDir = "/tmp/realm-flag"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GameURL != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", cfg.GameURL)
	}
	if cfg.StateDir != "/tmp/realm-flag" {
		t.Errorf("expected state dir flag, got %s", cfg.StateDir)
	}
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	isolateEnv(t)
	authURL = "://bad"

	if _, err := loadConfig(); err == nil {
		t.Error("expected invalid URL to be rejected")
	}
}

func TestJSONOutput(t *testing.T) {
	isolateEnv(t)
	jsonOutput = true

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"api error", &client.APIError{StatusCode: 403, Message: "Not allowed"}, exitAppError},
		{"wrapped api error", fmt.Errorf("collect: %w", &client.APIError{StatusCode: 401}), exitAppError},
		{"password mismatch", controller.ErrPasswordMismatch, exitAppError},
		{"unknown building", client.ErrUnknownBuilding, exitAppError},
		{"no token", session.ErrNoToken, exitAppError},
		{"usage", errUsage, exitAppError},
		{"transport", &client.TransportError{Op: "GET", Err: errors.New("refused")}, exitTransport},
		{"canceled", context.Canceled, exitTransport},
		{"deadline", context.DeadlineExceeded, exitTransport},
		{"other", errors.New("boom"), exitTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
