package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/parla-dictionary/internal/adapter/memory"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/postgres"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/postgres/sessionstore"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/redis"
	"github.com/heartmarshall/parla-dictionary/internal/config"
	"github.com/heartmarshall/parla-dictionary/internal/service/sessioncache"
)

// sessionStore is a session cache backend that can report its health.
type sessionStore interface {
	sessioncache.Store
	Ping(ctx context.Context) error
}

// openSessionStore connects the backend selected by cfg.SessionCache.Driver.
// The returned close func releases its connections.
func openSessionStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (sessionStore, func(), error) {
	switch cfg.SessionCache.Driver {
	case config.CacheDriverMemory:
		store, err := memory.NewSessionStore(cfg.SessionCache.MaxSessions, cfg.SessionCache.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("memory session store: %w", err)
		}
		return store, store.Close, nil

	case config.CacheDriverRedis:
		rdb, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSessionStore(rdb, cfg.SessionCache.TTL), func() { _ = rdb.Close() }, nil

	case config.CacheDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.MigratePool(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return sessionstore.New(pool, cfg.SessionCache.TTL), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown session cache driver %q", cfg.SessionCache.Driver)
	}
}
