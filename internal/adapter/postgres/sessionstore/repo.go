// Package sessionstore keeps session cache entries in PostgreSQL.
package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/parla-dictionary/internal/adapter/postgres"
)

const table = "dictionary_sessions"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo implements the session cache store over the dictionary_sessions table.
// Expired rows are invisible to Get and removed by DeleteExpired.
type Repo struct {
	q   postgres.Querier
	ttl time.Duration
	now func() time.Time
}

// New creates a Repo. ttl <= 0 stores rows without expiry.
func New(q postgres.Querier, ttl time.Duration) *Repo {
	return &Repo{q: q, ttl: ttl, now: time.Now}
}

// Get returns the live row for key.
func (r *Repo) Get(ctx context.Context, key string) ([]byte, string, bool, error) {
	query, args, err := psql.
		Select("words", "fingerprint").
		From(table).
		Where(sq.Eq{"session_key": key}).
		Where(sq.Or{sq.Eq{"expires_at": nil}, sq.Gt{"expires_at": r.now().UTC()}}).
		ToSql()
	if err != nil {
		return nil, "", false, fmt.Errorf("build get query: %w", err)
	}

	var (
		words       []byte
		fingerprint string
	)
	if err := r.q.QueryRow(ctx, query, args...).Scan(&words, &fingerprint); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", false, nil
		}
		return nil, "", false, postgres.MapError(err, "session", key)
	}

	return words, fingerprint, true, nil
}

// Set upserts the row for key and pushes its expiry forward.
func (r *Repo) Set(ctx context.Context, key string, words []byte, fingerprint string) error {
	now := r.now().UTC()

	var expiresAt *time.Time
	if r.ttl > 0 {
		t := now.Add(r.ttl)
		expiresAt = &t
	}

	query, args, err := psql.
		Insert(table).
		Columns("session_key", "words", "fingerprint", "updated_at", "expires_at").
		Values(key, words, fingerprint, now, expiresAt).
		Suffix(`ON CONFLICT (session_key) DO UPDATE SET
			words = EXCLUDED.words,
			fingerprint = EXCLUDED.fingerprint,
			updated_at = EXCLUDED.updated_at,
			expires_at = EXCLUDED.expires_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "session", key)
	}
	return nil
}

// Delete removes the row for key. Deleting a missing key is not an error.
func (r *Repo) Delete(ctx context.Context, key string) error {
	query, args, err := psql.Delete(table).Where(sq.Eq{"session_key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "session", key)
	}
	return nil
}

// DeleteExpired removes every row whose expiry is before the given moment and
// returns how many were removed.
func (r *Repo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psql.
		Delete(table).
		Where(sq.NotEq{"expires_at": nil}).
		Where(sq.LtOrEq{"expires_at": before.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expired query: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Ping runs a trivial query for readiness checks.
func (r *Repo) Ping(ctx context.Context) error {
	var one int
	if err := r.q.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
