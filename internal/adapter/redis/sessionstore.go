package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "parla:dict:"

// SessionStore keeps the words blob and the fingerprint under two keys per
// session, both carrying the same TTL.
type SessionStore struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

// NewSessionStore creates a store over rdb. ttl <= 0 keeps keys until deleted.
func NewSessionStore(rdb goredis.UniversalClient, ttl time.Duration) *SessionStore {
	if ttl < 0 {
		ttl = 0
	}
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func wordsKey(session string) string       { return keyPrefix + session + ":words" }
func fingerprintKey(session string) string { return keyPrefix + session + ":fingerprint" }

// Get reads both keys in one round trip.
func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, string, bool, error) {
	vals, err := s.rdb.MGet(ctx, wordsKey(key), fingerprintKey(key)).Result()
	if err != nil {
		return nil, "", false, fmt.Errorf("redis: get session %s: %w", key, err)
	}
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return nil, "", false, nil
	}

	words, ok1 := vals[0].(string)
	fingerprint, ok2 := vals[1].(string)
	if !ok1 || !ok2 {
		return nil, "", false, errors.New("redis: unexpected value type")
	}

	return []byte(words), fingerprint, true, nil
}

// Set writes both keys atomically.
func (s *SessionStore) Set(ctx context.Context, key string, words []byte, fingerprint string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, wordsKey(key), words, s.ttl)
		pipe.Set(ctx, fingerprintKey(key), fingerprint, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: set session %s: %w", key, err)
	}
	return nil
}

// Delete removes both keys.
func (s *SessionStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, wordsKey(key), fingerprintKey(key)).Err(); err != nil {
		return fmt.Errorf("redis: delete session %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
