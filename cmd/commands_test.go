// ABOUTME: End-to-end tests for the realm subcommands
// ABOUTME: Runs each command against a fake realm API with a temp session dir

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/markalston/realm-client/internal/client"
	"github.com/markalston/realm-client/internal/controller"
	"github.com/markalston/realm-client/internal/session"
)

func login(t *testing.T, username, password string) {
	t.Helper()
	loginUsername, loginPassword = username, password
	defer func() { loginUsername, loginPassword = "", "" }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != exitOK {
		t.Fatalf("login failed with exit code %d: %s", code, buf.String())
	}
}

func TestLogin_ThenResources(t *testing.T) {
	f := withFakeAPI(t)
	f.AddPlayer("alice", "secret", client.ResourceState{Wood: 1500, Stone: 2, Gold: 1})

	var buf bytes.Buffer
	loginUsername, loginPassword = "alice", "secret"
	if code := runLogin(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Redirect: "+f.URL()+"/game") {
		t.Errorf("expected redirect in output, got %q", buf.String())
	}

	buf.Reset()
	if code := runResources(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Wood:  1,500") {
		t.Errorf("expected wood count, got %q", buf.String())
	}
}

func TestLogin_Rejected(t *testing.T) {
	f := withFakeAPI(t)
	f.AddPlayer("alice", "secret", client.ResourceState{})

	var buf bytes.Buffer
	loginUsername, loginPassword = "alice", "wrong"
	code := runLogin(context.Background(), &buf)

	if code != exitAppError {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Error: Invalid username or password") {
		t.Errorf("expected server message, got %q", buf.String())
	}
}

func TestLogin_PromptsWithLastUsername(t *testing.T) {
	f := withFakeAPI(t)
	f.AddPlayer("alice", "secret", client.ResourceState{})
	login(t, "alice", "secret")

	var prompted string
	stubPrompts(t, func(u, p *string) error {
		prompted = *u
		*p = "secret"
		return nil
	}, nil)

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if prompted != "alice" {
		t.Errorf("expected last username offered, got %q", prompted)
	}
}

func TestLogin_ImportCookie(t *testing.T) {
	f := withFakeAPI(t)
	id := f.AddPlayer("alice", "secret", client.ResourceState{})

	var buf bytes.Buffer
	loginCookie = "theme=dark; access_token=" + f.IssueToken(id, "alice")
	if code := runLogin(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if f.Hits("/api/login") != 0 {
		t.Error("expected no login request")
	}

	buf.Reset()
	if code := runWhoami(context.Background(), &buf, time.Now()); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Player:  alice") {
		t.Errorf("expected player, got %q", buf.String())
	}
}

func TestLogin_ImportCookieWithoutToken(t *testing.T) {
	withFakeAPI(t)

	var buf bytes.Buffer
	loginCookie = "theme=dark"
	if code := runLogin(context.Background(), &buf); code != exitAppError {
		t.Errorf("expected exit 1, got %d", code)
	}
}

func TestRegister_JSON(t *testing.T) {
	withFakeAPI(t)
	jsonOutput = true

	var buf bytes.Buffer
	registerUsername, registerPassword, registerConfirm = "bob", "pw", "pw"
	if code := runRegister(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	var out outcome
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if !out.OK {
		t.Error("expected ok")
	}
	if out.Message != controller.MsgRegistered {
		t.Errorf("expected registration alert, got %q", out.Message)
	}
	if !strings.HasSuffix(out.Redirect, "/login") {
		t.Errorf("expected login redirect, got %q", out.Redirect)
	}
}

func TestRegister_MismatchSkipsRequest(t *testing.T) {
	f := withFakeAPI(t)

	var buf bytes.Buffer
	registerUsername, registerPassword, registerConfirm = "bob", "a", "b"
	if code := runRegister(context.Background(), &buf); code != exitAppError {
		t.Errorf("expected exit 1, got %d", code)
	}
	if f.Hits("/api/register") != 0 {
		t.Error("expected no register request")
	}
	if !strings.Contains(buf.String(), controller.MsgPasswordMismatch) {
		t.Errorf("expected mismatch message, got %q", buf.String())
	}
}

func TestRegister_Conflict(t *testing.T) {
	f := withFakeAPI(t)
	f.AddPlayer("bob", "pw", client.ResourceState{})

	var buf bytes.Buffer
	registerUsername, registerPassword, registerConfirm = "bob", "pw", "pw"
	if code := runRegister(context.Background(), &buf); code != exitAppError {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "User already exists") {
		t.Errorf("expected conflict message, got %q", buf.String())
	}
}

func TestCollect_ThenCooldown(t *testing.T) {
	f := withFakeAPI(t)
	f.AddPlayer("alice", "secret", client.ResourceState{Wood: 5, Stone: 2, Gold: 1})
	login(t, "alice", "secret")

	var buf bytes.Buffer
	if code := runCollect(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Wood:  15") || !strings.Contains(buf.String(), controller.MsgCollected) {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if code := runCollect(context.Background(), &buf); code != exitAppError {
		t.Errorf("expected exit 1 during cooldown, got %d", code)
	}
	if f.Resources("alice").Wood != 15 {
		t.Errorf("expected wood to stay at 15, got %d", f.Resources("alice").Wood)
	}
}

func TestCollect_NotLoggedIn(t *testing.T) {
	withFakeAPI(t)

	var buf bytes.Buffer
	if code := runCollect(context.Background(), &buf); code != exitAppError {
		t.Errorf("expected exit 1, got %d: %s", code, buf.String())
	}
}

func TestBuild(t *testing.T) {
	f := withFakeAPI(t)
	f.AddPlayer("alice", "secret", client.ResourceState{})
	login(t, "alice", "secret")

	var buf bytes.Buffer
	if code := runBuild(context.Background(), &buf, "Quarry"); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Quarry level increased successfully!") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if f.Hits("/resources") != 1 {
		t.Errorf("expected a reload after upgrade, got %d", f.Hits("/resources"))
	}
}

func TestBuild_UnknownBuilding(t *testing.T) {
	f := withFakeAPI(t)

	var buf bytes.Buffer
	if code := runBuild(context.Background(), &buf, "castle"); code != exitAppError {
		t.Errorf("expected exit 1, got %d", code)
	}
	if f.Hits("/build/castle") != 0 {
		t.Error("expected no request")
	}
	if !strings.Contains(buf.String(), controller.MsgUnknownBuilding) {
		t.Errorf("expected unknown building message, got %q", buf.String())
	}
}

func TestResources_Unreachable(t *testing.T) {
	f := withFakeAPI(t)
	f.Server.Close()

	var buf bytes.Buffer
	if code := runResources(context.Background(), &buf); code != exitTransport {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), controller.MsgServerError) {
		t.Errorf("expected server error, got %q", buf.String())
	}
}

func TestResources_WatchStopsOnCancel(t *testing.T) {
	f := withFakeAPI(t)
	f.AddPlayer("alice", "secret", client.ResourceState{Wood: 1})
	login(t, "alice", "secret")
	watchInterval = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	code := runResources(ctx, &buf)
	if code != exitOK && code != exitTransport {
		t.Errorf("unexpected exit code %d", code)
	}
	if f.Hits("/resources") < 3 {
		t.Errorf("expected repeated loads, got %d", f.Hits("/resources"))
	}
}

func TestLogout(t *testing.T) {
	f := withFakeAPI(t)
	f.AddPlayer("alice", "secret", client.ResourceState{})
	login(t, "alice", "secret")

	var buf bytes.Buffer
	if code := runLogout(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Logged out") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if code := runWhoami(context.Background(), &buf, time.Now()); code != exitAppError {
		t.Errorf("expected exit 1 after logout, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFormatWhoamiHuman_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	out := formatWhoamiHuman(&session.Claims{Username: "alice", Subject: "1", ExpiresAt: now.Add(-2 * time.Hour)}, now)
	if !strings.Contains(out, "2 hours ago (expired)") {
		t.Errorf("expected expired marker, got %q", out)
	}
}
