package store

import (
	"context"
	"sync"
	"time"

	"github.com/ByteAtATime/firebase-auth-extension/ports"
)

// MemoryStore is an in-memory implementation of the Store interface,
// used when no Redis URL is configured and in tests.
type MemoryStore struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() ports.Store {
	return &MemoryStore{
		revoked: make(map[string]time.Time),
	}
}

// Revoke marks a credential as revoked
func (s *MemoryStore) Revoke(ctx context.Context, credentialID string, expiry time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiryTime := time.Now().Add(expiry)
	s.revoked[credentialID] = expiryTime

	// Drop the entry once the revocation itself has expired
	go func() {
		time.Sleep(expiry)

		s.mu.Lock()
		defer s.mu.Unlock()

		// Only delete if the expiry time hasn't changed
		if storedExpiry, exists := s.revoked[credentialID]; exists && !storedExpiry.After(expiryTime) {
			delete(s.revoked, credentialID)
		}
	}()

	return nil
}

// IsRevoked checks if a credential has been revoked
func (s *MemoryStore) IsRevoked(ctx context.Context, credentialID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiryTime, exists := s.revoked[credentialID]
	if !exists {
		return false, nil
	}

	// A revocation that has outlived the credential no longer matters
	if time.Now().After(expiryTime) {
		return false, nil
	}

	return true, nil
}
