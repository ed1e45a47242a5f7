// ABOUTME: Session context holding the player's access token
// ABOUTME: Single accessor over durable storage and the game cookie

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/markalston/realm-client/internal/storage"
)

var (
	// ErrNoToken is returned when no access token is stored
	ErrNoToken = errors.New("session: no access token")
	// ErrEmptyToken is returned when asked to store an empty token
	ErrEmptyToken = errors.New("session: refusing to store empty token")
)

// Claims are the identity fields carried by the access token.
// They are decoded for display only; the game service does the verification.
type Claims struct {
	Subject   string
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the token has an expiry in the past
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Session is the one place controllers read and write the access token.
//
// Token precedence: durable storage key "jwt", then the access_token cookie.
type Session struct {
	kv  storage.Store
	jar *CookieJar
}

// New creates a session over a store and a cookie jar
func New(kv storage.Store, jar *CookieJar) *Session {
	return &Session{kv: kv, jar: jar}
}

// Jar returns the cookie jar, for sharing with the HTTP client
func (s *Session) Jar() *CookieJar {
	return s.jar
}

// Token returns the current access token or "" when there is none
func (s *Session) Token(ctx context.Context) string {
	token, ok, err := s.kv.Get(ctx, storage.KeyToken)
	if err != nil {
		slog.Warn("Failed to read token from storage, trying cookie", "error", err)
	}
	if ok && token != "" {
		return token
	}
	return s.jar.Get(TokenCookieName)
}

// SetToken writes token to both storage and the cookie
func (s *Session) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.kv.Set(ctx, storage.KeyToken, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := s.jar.Set(ctx, TokenCookieName, token); err != nil {
		return fmt.Errorf("failed to store token cookie: %w", err)
	}
	return nil
}

// Clear removes the token from both places
func (s *Session) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storage.KeyToken); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if err := s.jar.Remove(ctx, TokenCookieName); err != nil {
		return fmt.Errorf("failed to clear token cookie: %w", err)
	}
	return nil
}

// Claims decodes the stored token without verifying its signature
func (s *Session) Claims(ctx context.Context) (*Claims, error) {
	token := s.Token(ctx)
	if token == "" {
		return nil, ErrNoToken
	}
	return DecodeClaims(token)
}

// DecodeClaims reads sub, username and exp from an unverified JWT
func DecodeClaims(token string) (*Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("access token is not a JWT: %w", err)
	}

	claims := &Claims{}
	claims.Subject, _ = mc.GetSubject()
	if name, ok := mc["username"].(string); ok {
		claims.Username = name
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// LastUsername returns the username of the most recent successful login
func (s *Session) LastUsername(ctx context.Context) string {
	name, _, err := s.kv.Get(ctx, storage.KeyLastUsername)
	if err != nil {
		slog.Debug("No last username", "error", err)
	}
	return name
}

// RememberUsername stores username for prefilling the next login
func (s *Session) RememberUsername(ctx context.Context, username string) error {
	if username == "" {
		return nil
	}
	return s.kv.Set(ctx, storage.KeyLastUsername, username)
}
