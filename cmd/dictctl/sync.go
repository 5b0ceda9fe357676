package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/parla-dictionary/internal/adapter/backend"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/memory"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/redis"
	"github.com/heartmarshall/parla-dictionary/internal/app"
	"github.com/heartmarshall/parla-dictionary/internal/domain"
	"github.com/heartmarshall/parla-dictionary/internal/service/dictsync"
	"github.com/heartmarshall/parla-dictionary/internal/service/sessioncache"
	"github.com/heartmarshall/parla-dictionary/pkg/ctxutil"
)

type syncOutput struct {
	Phase       dictsync.Phase          `json:"phase"`
	Error       string                  `json:"error,omitempty"`
	Fingerprint string                  `json:"fingerprint"`
	Words       []domain.VocabularyWord `json:"words"`
}

func newSyncCmd(g *globalFlags) *cobra.Command {
	lf := &lookupFlags{}
	var (
		backendURL string
		token      string
		interval   time.Duration
		redisAddr  string
		sessionKey string
		refresh    bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch phrases from the backend and build the dictionary once",
		Long: "Runs one synchronization for the token's phrases and prints the resulting words as JSON. " +
			"With --redis-addr the server's Redis session cache is read and written.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				token = os.Getenv("PARLA_TOKEN")
			}
			if token == "" {
				return errors.New("a backend token is required (--token or PARLA_TOKEN)")
			}

			logger := g.logger(cmd.ErrOrStderr())
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			ctx = ctxutil.WithAccessToken(ctx, token)

			var store sessioncache.Store
			if redisAddr != "" {
				rdb, err := redis.NewClient(ctx, redis.Options{Addr: redisAddr}, logger)
				if err != nil {
					return err
				}
				defer rdb.Close()
				store = redis.NewSessionStore(rdb, 12*time.Hour)
			} else {
				mem, err := memory.NewSessionStore(1, 0)
				if err != nil {
					return err
				}
				defer mem.Close()
				store = mem
			}

			cfg := lf.config(g)
			phrases := backend.NewClient(backendURL, lf.timeout, app.RetryPolicy(cfg.Sync), logger)
			o := dictsync.NewOrchestrator(logger, sessionKey, phrases, lf.service(g, logger), sessioncache.New(logger, store), dictsync.Options{
				SourceLanguage: g.source,
				TargetLanguage: g.target,
				LookupInterval: interval,
			})

			run := o.Load
			if refresh {
				run = o.Refresh
			}
			syncErr := run(ctx)

			snap := o.Snapshot()
			if err := writeJSON(cmd.OutOrStdout(), syncOutput{
				Phase:       snap.State.Phase(),
				Error:       dictsync.ErrorMessage(snap.State),
				Fingerprint: snap.Fingerprint,
				Words:       snap.Words,
			}); err != nil {
				return err
			}
			if syncErr != nil {
				return fmt.Errorf("sync: %w", syncErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend-url", "http://localhost:3000/api", "Parla backend API base URL")
	cmd.Flags().StringVar(&token, "token", "", "backend access token (default $PARLA_TOKEN)")
	cmd.Flags().DurationVar(&interval, "interval", 200*time.Millisecond, "minimum spacing between word lookups")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "use the Redis session cache at this address")
	cmd.Flags().StringVar(&sessionKey, "session-key", "dictctl", "session cache key")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the cache and re-import every word")
	cmd.Flags().DurationVar(&timeout, "sync-timeout", 10*time.Minute, "overall sync timeout")
	lf.register(cmd)
	return cmd
}
