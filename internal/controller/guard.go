// ABOUTME: In-flight guard and response sequencing for controller actions
// ABOUTME: Rejects duplicate submissions and drops stale resource responses

package controller

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/markalston/realm-client/internal/client"
)

var (
	// ErrInFlight is returned when the same action is already awaiting a response
	ErrInFlight = errors.New("action already in progress")
	// ErrPasswordMismatch is returned when the confirmation differs from the password
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// inflight allows one pending request per action
type inflight struct {
	busy atomic.Bool
}

func (g *inflight) acquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *inflight) release() {
	g.busy.Store(false)
}

// Busy reports whether a request is pending
func (g *inflight) Busy() bool {
	return g.busy.Load()
}

// sequencer numbers requests as they start and applies a response only
// when no later-started request has been applied already
type sequencer struct {
	next atomic.Uint64

	mu       sync.Mutex
	applied  uint64
	snapshot client.ResourceState
	loaded   bool
}

func (s *sequencer) start() uint64 {
	return s.next.Add(1)
}

// apply stores state and runs show under the lock if seq is newest
func (s *sequencer) apply(seq uint64, state client.ResourceState, show func(client.ResourceState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.snapshot = state
	s.loaded = true
	show(state)
	return true
}

func (s *sequencer) current() (client.ResourceState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.loaded
}
