// ABOUTME: Durable client-side key-value storage for session state
// ABOUTME: Defines the Store interface shared by the sqlite and memory backends

package storage

import (
	"context"
	"errors"
)

// Well-known keys
const (
	KeyToken        = "jwt"
	KeyCookies      = "cookies"
	KeyLastUsername = "last_username"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("storage: store is closed")

// Store is a string key-value store that outlives a single command
type Store interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
