package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *SessionStore {
	t.Helper()
	s, err := NewSessionStore(100, ttl)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSessionStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "s1", []byte(`[]`), "1,2"))

	words, fp, ok, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`[]`), words)
	assert.Equal(t, "1,2", fp)

	require.NoError(t, s.Delete(ctx, "s1"))

	_, _, ok, err = s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_Overwrite(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "s1", []byte(`[1]`), "a"))
	require.NoError(t, s.Set(ctx, "s1", []byte(`[2]`), "b"))

	words, fp, ok, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`[2]`), words)
	assert.Equal(t, "b", fp)
}

func TestSessionStore_CopiesInput(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 0)
	ctx := context.Background()

	buf := []byte(`[]`)
	require.NoError(t, s.Set(ctx, "s1", buf, "x"))
	buf[0] = 'X'

	words, _, _, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), words)
}

func TestSessionStore_Expiry(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "s1", []byte(`[]`), "1"))

	assert.Eventually(t, func() bool {
		_, _, ok, _ := s.Get(ctx, "s1")
		return !ok
	}, 3*time.Second, 20*time.Millisecond)
}

func TestSessionStore_FullStoreReportsDroppedWrites(t *testing.T) {
	t.Parallel()

	s, err := NewSessionStore(1, 0)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "hot", []byte(`[]`), "1"))
	for range 1000 {
		_, _, _, _ = s.Get(ctx, "hot")
	}

	for _, key := range []string{"cold-1", "cold-2", "cold-3", "cold-4", "cold-5"} {
		err := s.Set(ctx, key, []byte(`[{"id":"w"}]`), "2")
		_, _, ok, getErr := s.Get(ctx, key)
		require.NoError(t, getErr)

		if err != nil {
			assert.ErrorIs(t, err, ErrNotAdmitted)
			assert.False(t, ok, "%s: a rejected write must not be readable", key)
			continue
		}
		assert.True(t, ok, "%s: an accepted write must be readable", key)
	}
}
