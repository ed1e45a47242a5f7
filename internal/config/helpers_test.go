// ABOUTME: Test helpers for config tests
// ABOUTME: Provides utilities for environment variable management

package config

import (
	"os"
	"strings"
	"testing"
)

// withCleanEnv unsets every REALM_ variable, sets extra, and restores the
// original values when the test ends.
func withCleanEnv(t *testing.T, extra map[string]string) {
	t.Helper()

	keys := []string{"AUTH_URL", "GAME_URL", "HTTP_TIMEOUT", "POLL_INTERVAL", "STATE_DIR", "LOG_LEVEL", "LOG_FORMAT"}
	for i, k := range keys {
		keys[i] = Prefix + k
	}
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, Prefix) {
			keys = append(keys, key)
		}
	}
	// t.Setenv registers the restore, including for variables a .env file sets later
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	for k, v := range extra {
		t.Setenv(k, v)
	}
}
