// ABOUTME: Tests for the fake realm API
// ABOUTME: Exercises login, collect cooldown, register conflicts and token checks

package testutil

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markalston/realm-client/internal/client"
)

func TestFakeAPI_LoginThenCollect(t *testing.T) {
	f := NewFakeAPI(t)
	f.AddPlayer("alice", "secret", client.ResourceState{Wood: 5, Stone: 2, Gold: 1})
	c := client.New(f.URL(), f.URL())
	ctx := context.Background()

	auth, err := c.Login(ctx, client.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Contains(t, auth.RedirectURL, "/game?token=")

	state, err := c.Resources(ctx, auth.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, client.ResourceState{Wood: 5, Stone: 2, Gold: 1}, *state)

	res, err := c.CollectResources(ctx, auth.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, client.ResourceState{Wood: 15, Stone: 7, Gold: 3}, *res.Resources)

	_, err = c.CollectResources(ctx, auth.AccessToken)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, 2, f.Hits("/collect_resources"))
}

func TestFakeAPI_CooldownExpires(t *testing.T) {
	f := NewFakeAPI(t)
	id := f.AddPlayer("alice", "secret", client.ResourceState{})
	var offset atomic.Int64
	start := time.Now()
	f.SetClock(func() time.Time { return start.Add(time.Duration(offset.Load())) })
	token := f.IssueToken(id, "alice")
	c := client.New(f.URL(), f.URL())

	_, err := c.CollectResources(context.Background(), token)
	require.NoError(t, err)

	offset.Store(int64(CollectCooldown))
	_, err = c.CollectResources(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, client.ResourceState{Wood: 20, Stone: 10, Gold: 4}, f.Resources("alice"))
}

func TestFakeAPI_RegisterConflict(t *testing.T) {
	f := NewFakeAPI(t)
	c := client.New(f.URL(), f.URL())
	creds := client.Credentials{Username: "bob", Password: "pw"}

	_, err := c.Register(context.Background(), creds)
	require.NoError(t, err)

	_, err = c.Register(context.Background(), creds)
	msg, ok := client.APIMessage(err)
	require.True(t, ok)
	assert.Equal(t, "User already exists", msg)
}

func TestFakeAPI_RejectsBadToken(t *testing.T) {
	f := NewFakeAPI(t)
	c := client.New(f.URL(), f.URL())

	_, err := c.Resources(context.Background(), "not-a-jwt")
	msg, ok := client.APIMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid token", msg)

	_, err = c.Resources(context.Background(), "")
	msg, _ = client.APIMessage(err)
	assert.Equal(t, "Token is required", msg)
}

func TestFakeAPI_Build(t *testing.T) {
	f := NewFakeAPI(t)
	id := f.AddPlayer("alice", "secret", client.ResourceState{})
	c := client.New(f.URL(), f.URL())

	res, err := c.UpgradeBuilding(context.Background(), f.IssueToken(id, "alice"), "mine")
	require.NoError(t, err)
	require.NotNil(t, res.Buildings)
	assert.Equal(t, 2, res.Buildings.Mine)
	assert.Equal(t, "Mine level increased successfully!", res.Message)
}

func TestFakeAPI_HookAnswersFirst(t *testing.T) {
	f := NewFakeAPI(t)
	f.Hook = func(w http.ResponseWriter, r *http.Request) bool {
		if r.URL.Path != "/resources" {
			return false
		}
		writeMessage(w, "maintenance", http.StatusServiceUnavailable)
		return true
	}
	c := client.New(f.URL(), f.URL())

	_, err := c.Resources(context.Background(), "any")
	msg, ok := client.APIMessage(err)
	require.True(t, ok)
	assert.Equal(t, "maintenance", msg)
	assert.Equal(t, 1, f.Hits("/resources"))
}

func TestFakeAPI_EchoesRequestID(t *testing.T) {
	f := NewFakeAPI(t)

	req, err := http.NewRequest(http.MethodGet, f.URL()+"/resources", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "req-42", resp.Header.Get("X-Request-ID"))
}
