// Package memory provides an in-process session cache store.
package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// ErrNotAdmitted is returned when the cache's admission policy dropped a
// write, typically because the store is full of more frequently read
// sessions.
var ErrNotAdmitted = errors.New("session cache did not admit the entry")

type entry struct {
	words       []byte
	fingerprint string
}

// SessionStore keeps session cache entries in a bounded ristretto cache.
// Each session costs 1, so MaxCost is the number of sessions retained.
type SessionStore struct {
	cache *ristretto.Cache[string, entry]
	ttl   time.Duration
}

// NewSessionStore creates a store holding at most maxSessions entries, each
// expiring ttl after its last write. ttl <= 0 disables expiry.
func NewSessionStore(maxSessions int64, ttl time.Duration) (*SessionStore, error) {
	if maxSessions <= 0 {
		maxSessions = 1
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, entry]{
		NumCounters: maxSessions * 10,
		MaxCost:     maxSessions,
		BufferItems: 64,
		// Costs count sessions, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &SessionStore{cache: c, ttl: ttl}, nil
}

// Get returns the entry stored for key.
func (s *SessionStore) Get(_ context.Context, key string) ([]byte, string, bool, error) {
	e, ok := s.cache.Get(key)
	if !ok {
		return nil, "", false, nil
	}
	return e.words, e.fingerprint, true, nil
}

// Set stores both values for key. Writes are made visible before returning;
// a write the admission policy drops after accepting it is reported as
// ErrNotAdmitted so callers never assume a cache entry that is not there.
func (s *SessionStore) Set(_ context.Context, key string, words []byte, fingerprint string) error {
	e := entry{words: append([]byte(nil), words...), fingerprint: fingerprint}
	if !s.cache.SetWithTTL(key, e, 1, s.ttl) {
		return fmt.Errorf("set %q: %w", key, ErrNotAdmitted)
	}
	s.cache.Wait()

	got, ok := s.cache.Get(key)
	if !ok || got.fingerprint != fingerprint || len(got.words) != len(e.words) {
		return fmt.Errorf("set %q: %w", key, ErrNotAdmitted)
	}
	return nil
}

// Delete removes key.
func (s *SessionStore) Delete(_ context.Context, key string) error {
	s.cache.Del(key)
	return nil
}

// Ping always succeeds; it lets the store take part in readiness checks.
func (s *SessionStore) Ping(context.Context) error { return nil }

// Close stops the cache's background goroutines.
func (s *SessionStore) Close() {
	s.cache.Close()
}
