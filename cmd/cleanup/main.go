// Command cleanup removes expired dictionary sessions from the Postgres
// session store. Redis and in-memory stores expire entries on their own.
// It is intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/parla-dictionary/internal/adapter/postgres"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/postgres/sessionstore"
	"github.com/heartmarshall/parla-dictionary/internal/app"
	"github.com/heartmarshall/parla-dictionary/internal/config"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.PathEnv+" or "+config.DefaultPath+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.SessionCache.Driver != config.CacheDriverPostgres {
		logger.Info("session cache is not postgres, nothing to clean", slog.String("driver", cfg.SessionCache.Driver))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	now := time.Now()
	deleted, err := sessionstore.New(pool, cfg.SessionCache.TTL).DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("delete expired sessions failed",
			slog.String("error", err.Error()),
			slog.Time("before", now),
		)
		os.Exit(1)
	}

	logger.Info("expired sessions deleted",
		slog.Int64("deleted", deleted),
		slog.Time("before", now),
	)
}
