// Package sessioncache persists the last-known word set of a session together
// with the fingerprint of the phrase set it was built from.
package sessioncache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/parla-dictionary/internal/domain"
)

// Store is the session-scoped key/value backend. Words and fingerprint are
// two logical keys stored as opaque blobs; found is false when either is
// missing or expired.
type Store interface {
	Get(ctx context.Context, key string) (words []byte, fingerprint string, found bool, err error)
	Set(ctx context.Context, key string, words []byte, fingerprint string) error
	Delete(ctx context.Context, key string) error
}

// Cache encodes word sets for a Store and degrades every read problem to a
// miss.
type Cache struct {
	log   *slog.Logger
	store Store
}

// New creates a Cache over store.
func New(logger *slog.Logger, store Store) *Cache {
	return &Cache{
		log:   logger.With("service", "sessioncache"),
		store: store,
	}
}

// Read returns the cached entry for key. A store failure or an unparsable
// blob is logged and reported as absent.
func (c *Cache) Read(ctx context.Context, key string) (domain.CacheEntry, bool) {
	blob, fingerprint, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.WarnContext(ctx, "session cache read failed, treating as miss",
			slog.String("session", key),
			slog.String("error", err.Error()),
		)
		return domain.CacheEntry{}, false
	}
	if !found {
		return domain.CacheEntry{}, false
	}

	var words []domain.VocabularyWord
	if err := json.Unmarshal(blob, &words); err != nil || words == nil {
		c.log.WarnContext(ctx, "session cache entry corrupt, treating as miss",
			slog.String("session", key),
			slog.Any("error", err),
		)
		return domain.CacheEntry{}, false
	}

	return domain.CacheEntry{Words: words, Fingerprint: fingerprint}, true
}

// Write replaces both keys for the session.
func (c *Cache) Write(ctx context.Context, key string, entry domain.CacheEntry) error {
	words := entry.Words
	if words == nil {
		words = []domain.VocabularyWord{}
	}

	blob, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}

	if err := c.store.Set(ctx, key, blob, entry.Fingerprint); err != nil {
		return fmt.Errorf("write session cache: %w", err)
	}
	return nil
}

// Invalidate removes both keys for the session.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate session cache: %w", err)
	}
	return nil
}
