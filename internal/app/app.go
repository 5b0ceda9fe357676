package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/parla-dictionary/internal/adapter/backend"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/provider/freedict"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/provider/httpx"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/provider/mymemory"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/provider/translate"
	"github.com/heartmarshall/parla-dictionary/internal/auth"
	"github.com/heartmarshall/parla-dictionary/internal/config"
	"github.com/heartmarshall/parla-dictionary/internal/service/dictsync"
	"github.com/heartmarshall/parla-dictionary/internal/service/lookup"
	"github.com/heartmarshall/parla-dictionary/internal/service/sessioncache"
	"github.com/heartmarshall/parla-dictionary/internal/transport/middleware"
	"github.com/heartmarshall/parla-dictionary/internal/transport/rest"
)

// Run is the application entry point. It loads configuration from
// configPath (see config.Load), connects the session store, wires the
// services and serves HTTP until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("session_cache", cfg.SessionCache.Driver),
		slog.String("translation", cfg.Translation.Provider),
	)

	store, closeStore, err := openSessionStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer closeStore()

	lookupSvc := NewLookupService(cfg, logger)
	phrases := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, RetryPolicy(cfg.Sync), logger)
	cache := sessioncache.New(logger, store)

	opts := dictsync.Options{
		SourceLanguage: cfg.Sync.SourceLanguage,
		TargetLanguage: cfg.Sync.TargetLanguage,
		LookupInterval: cfg.Sync.LookupInterval,
	}
	registry := dictsync.NewRegistry(logger, func(key string) *dictsync.Orchestrator {
		return dictsync.NewOrchestrator(logger, key, phrases, lookupSvc, cache, opts)
	}, cfg.Sync.IdleTimeout)

	runCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	go registry.Run(runCtx, cfg.Sync.SweepInterval)

	dictHandler := rest.NewDictionaryHandler(registry, lookupSvc, rest.DictionaryOptions{
		SourceLanguage: cfg.Sync.SourceLanguage,
		TargetLanguage: cfg.Sync.TargetLanguage,
		SyncTimeout:    cfg.Sync.Timeout,
	}, logger)

	deps := rest.RouterDeps{
		Logger:     logger,
		Health:     rest.NewHealthHandler(store, "session_cache."+cfg.SessionCache.Driver, registry, BuildVersion()),
		Dictionary: dictHandler,
		Auth:       middleware.Auth(auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, 0)),
		CORS:       middleware.CORS(cfg.CORS),
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
		deps.RateLimit = limiter.Limit()
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}
	if err := dictHandler.Wait(shutdownCtx); err != nil {
		logger.Warn("background syncs still running at shutdown", slog.String("error", err.Error()))
	}

	logger.Info("stopped")
	return nil
}

// RetryPolicy derives the outbound HTTP retry policy from sync settings.
func RetryPolicy(cfg config.SyncConfig) httpx.RetryPolicy {
	policy := httpx.DefaultRetryPolicy()
	policy.MaxRetries = cfg.MaxRetries
	if cfg.RetryWait > 0 {
		policy.InitialInterval = cfg.RetryWait
		policy.MaxInterval = max(policy.MaxInterval, cfg.RetryWait)
	}
	return policy
}

// NewLookupService wires the translation and definition providers selected
// by cfg.
func NewLookupService(cfg *config.Config, logger *slog.Logger) *lookup.Service {
	retry := RetryPolicy(cfg.Sync)

	dictionary := freedict.NewProvider(cfg.Definition.BaseURL, cfg.Definition.Timeout, retry, logger)

	if cfg.Translation.Provider == config.TranslationNone {
		return lookup.NewService(logger, translate.NewStub(), dictionary)
	}
	translator := mymemory.NewClient(cfg.Translation.BaseURL, cfg.Translation.Email, cfg.Translation.Timeout, retry, logger)
	return lookup.NewService(logger, translator, dictionary)
}
