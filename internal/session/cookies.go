// ABOUTME: Persistent cookie jar scoped to the game service origin
// ABOUTME: Wraps net/http/cookiejar and snapshots cookies into durable storage

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/markalston/realm-client/internal/storage"
	"golang.org/x/net/publicsuffix"
)

// TokenCookieName is the cookie that carries the access token
const TokenCookieName = "access_token"

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CookieJar is an http.CookieJar whose cookies for one origin survive restarts.
// Cookies are set with Path=/ and no expiry, like document.cookie assignments.
type CookieJar struct {
	mu     sync.Mutex
	jar    *cookiejar.Jar
	origin *url.URL
	kv     storage.Store
}

// NewCookieJar creates a jar for origin and restores any snapshot held in kv
func NewCookieJar(ctx context.Context, origin string, kv storage.Store) (*CookieJar, error) {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid cookie origin %q", origin)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	cj := &CookieJar{jar: jar, origin: &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}, kv: kv}
	if err := cj.restore(ctx); err != nil {
		return nil, err
	}
	return cj, nil
}

// SetCookies implements http.CookieJar. Cookies for the tracked origin are persisted.
func (c *CookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	c.jar.SetCookies(u, cookies)
	if u.Host != c.origin.Host {
		return
	}
	if err := c.save(context.Background()); err != nil {
		slog.Warn("Failed to persist cookies", "error", err)
	}
}

// Cookies implements http.CookieJar
func (c *CookieJar) Cookies(u *url.URL) []*http.Cookie {
	return c.jar.Cookies(u)
}

// Get returns the value of the named cookie for the origin, or ""
func (c *CookieJar) Get(name string) string {
	for _, ck := range c.jar.Cookies(c.origin) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// Set stores a root-path session cookie for the origin
func (c *CookieJar) Set(ctx context.Context, name, value string) error {
	c.jar.SetCookies(c.origin, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
	return c.save(ctx)
}

// Remove expires the named cookie
func (c *CookieJar) Remove(ctx context.Context, name string) error {
	c.jar.SetCookies(c.origin, []*http.Cookie{{Name: name, Path: "/", MaxAge: -1}})
	return c.save(ctx)
}

// Header renders the origin's cookies the way document.cookie does
func (c *CookieJar) Header() string {
	var parts []string
	for _, ck := range c.jar.Cookies(c.origin) {
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}

func (c *CookieJar) save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.jar.Cookies(c.origin)
	if len(current) == 0 {
		return c.kv.Delete(ctx, storage.KeyCookies)
	}

	snapshot := make([]storedCookie, 0, len(current))
	for _, ck := range current {
		snapshot = append(snapshot, storedCookie{Name: ck.Name, Value: ck.Value})
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode cookies: %w", err)
	}
	return c.kv.Set(ctx, storage.KeyCookies, string(data))
}

func (c *CookieJar) restore(ctx context.Context) error {
	raw, ok, err := c.kv.Get(ctx, storage.KeyCookies)
	if err != nil {
		return fmt.Errorf("failed to load cookies: %w", err)
	}
	if !ok {
		return nil
	}

	var snapshot []storedCookie
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		// Corrupt snapshot, start fresh
		slog.Warn("Discarding unreadable cookie snapshot", "error", err)
		return nil
	}

	cookies := make([]*http.Cookie, 0, len(snapshot))
	for _, sc := range snapshot {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: "/"})
	}
	c.jar.SetCookies(c.origin, cookies)
	return nil
}

// ParseCookieHeader extracts the named cookie from a "k=v; k2=v2" string.
// Returns "" when the cookie is absent.
func ParseCookieHeader(header, name string) string {
	for _, part := range strings.Split(header, ";") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		if strings.TrimSpace(k) == name {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
