// Package session persists the auth credential of each browser client.
// A client has at most one credential; it lives from login until logout.
// There is no client-side expiry.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Store defines the persistence operations for session credentials.
// The app layer depends on this interface; production uses the Postgres
// implementation when a database is configured, otherwise MemoryStore.
type Store interface {
	// Get returns the credential saved for clientID.
	// Returns domain.ErrNotFound if the client has no credential.
	Get(ctx context.Context, clientID uuid.UUID) (string, error)

	// Save stores credential for clientID, replacing any previous value.
	Save(ctx context.Context, clientID uuid.UUID, credential string) error

	// Remove deletes the credential for clientID. Removing a missing
	// credential is not an error.
	Remove(ctx context.Context, clientID uuid.UUID) error
}

// MemoryStore keeps credentials in process memory. Credentials survive page
// reloads but not a server restart.
type MemoryStore struct {
	mu    sync.RWMutex
	creds map[uuid.UUID]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{creds: make(map[uuid.UUID]string)}
}

func (s *MemoryStore) Get(_ context.Context, clientID uuid.UUID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.creds[clientID]
	if !ok {
		return "", fmt.Errorf("session.MemoryStore.Get: %w", domain.ErrNotFound)
	}
	return cred, nil
}

func (s *MemoryStore) Save(_ context.Context, clientID uuid.UUID, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[clientID] = credential
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, clientID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, clientID)
	return nil
}
