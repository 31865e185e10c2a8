package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Registry creates and looks up client states by client id.
type Registry struct {
	deps Deps

	mu     sync.Mutex
	states map[uuid.UUID]*State
}

// NewRegistry returns an empty registry. deps.Gateway and deps.Sessions
// are required.
func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps.withDefaults(), states: make(map[uuid.UUID]*State)}
}

// Get returns the state of client id, creating it on first use. A new
// state reads the client's saved credential so a returning client starts
// logged in.
func (r *Registry) Get(ctx context.Context, id uuid.UUID) (*State, error) {
	now := r.deps.Clock.Now()

	r.mu.Lock()
	s, ok := r.states[id]
	r.mu.Unlock()
	if ok {
		s.touch(now)
		return s, nil
	}

	credential, err := r.deps.Sessions.Get(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("app.Registry.Get: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.states[id]; ok {
		return s, nil
	}
	s = newState(id, credential, r.deps)
	r.states[id] = s
	return s, nil
}

// Len returns the number of live client states.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// Sweep drops states idle for longer than maxIdle and returns how many were
// dropped. Saved credentials are kept, so a returning client is restored
// logged in.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.deps.Clock.Now().Add(-maxIdle)

	r.mu.Lock()
	var idle []*State
	for id, s := range r.states {
		if s.idleSince().Before(cutoff) {
			idle = append(idle, s)
			delete(r.states, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	return len(idle)
}

// Close stops the timers of every state.
func (r *Registry) Close() {
	r.mu.Lock()
	states := make([]*State, 0, len(r.states))
	for _, s := range r.states {
		states = append(states, s)
	}
	r.states = make(map[uuid.UUID]*State)
	r.mu.Unlock()

	for _, s := range states {
		s.close()
	}
}
