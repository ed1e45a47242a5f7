// ABOUTME: Shared helpers for command tests
// ABOUTME: Isolates REALM_ env vars and resets flag variables between tests

package cmd

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/markalston/realm-client/internal/testutil"
)

// isolateEnv clears REALM_ variables, points state at a temp dir and
// resets every flag variable when the test ends
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "REALM_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	t.Setenv("REALM_STATE_DIR", t.TempDir())
	t.Setenv("REALM_LOG_LEVEL", "error")

	resetFlags()
	t.Cleanup(resetFlags)
}

func resetFlags() {
	authURL, gameURL, stateDir = "", "", ""
	jsonOutput, ephemeral = false, false
	loginUsername, loginPassword, loginCookie = "", "", ""
	registerUsername, registerPassword, registerConfirm = "", "", ""
	watchInterval = 0
	playPoll = 0
}

// withFakeAPI starts a fake realm API and points the CLI at it
func withFakeAPI(t *testing.T) *testutil.FakeAPI {
	t.Helper()
	isolateEnv(t)
	f := testutil.NewFakeAPI(t)
	t.Setenv("REALM_AUTH_URL", f.URL())
	t.Setenv("REALM_GAME_URL", f.URL())
	t.Setenv("REALM_HTTP_TIMEOUT", (5 * time.Second).String())
	return f
}

// stubPrompts replaces the interactive prompts for one test
func stubPrompts(t *testing.T, login func(u, p *string) error, register func(u, p, c *string) error) {
	t.Helper()
	origLogin, origRegister := promptLogin, promptRegister
	if login != nil {
		promptLogin = login
	}
	if register != nil {
		promptRegister = register
	}
	t.Cleanup(func() {
		promptLogin, promptRegister = origLogin, origRegister
	})
}
