// ABOUTME: In-memory Store implementation backed by sync.Map
// ABOUTME: Used for tests and for the --ephemeral flag

package storage

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Memory is a process-local Store
type Memory struct {
	store  sync.Map
	closed atomic.Bool
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	if m.closed.Load() {
		return "", false, ErrClosed
	}
	val, ok := m.store.Load(key)
	if !ok {
		slog.Debug("Storage miss", "key", key)
		return "", false, nil
	}
	slog.Debug("Storage hit", "key", key)
	return val.(string), true, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.store.Store(key, value)
	slog.Debug("Storage set", "key", key)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.store.Delete(key)
	return nil
}

// Close marks the store closed; stored values are dropped
func (m *Memory) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	m.store.Range(func(key, _ interface{}) bool {
		m.store.Delete(key)
		return true
	})
	return nil
}
