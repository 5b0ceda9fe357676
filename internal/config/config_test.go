package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "parla.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// validConfig returns a config that passes Validate, with every default
// filled the way cleanenv would.
func validConfig() *Config {
	return &Config{
		Server:      ServerConfig{Host: "0.0.0.0", Port: 8080},
		Log:         LogConfig{Level: "info", Format: "json"},
		Auth:        AuthConfig{JWTSecret: "this-is-a-very-long-jwt-secret-for-testing-32+", JWTIssuer: "parla"},
		Backend:     BackendConfig{BaseURL: "http://localhost:3000/api", Timeout: 10 * time.Second},
		Translation: TranslationConfig{Provider: TranslationMyMemory, Timeout: 10 * time.Second},
		Definition:  DefinitionConfig{Timeout: 10 * time.Second},
		Sync: SyncConfig{
			SourceLanguage: "en",
			TargetLanguage: "it",
			LookupInterval: 200 * time.Millisecond,
			MaxRetries:     1,
			RetryWait:      500 * time.Millisecond,
			IdleTimeout:    30 * time.Minute,
			SweepInterval:  time.Minute,
			Timeout:        10 * time.Minute,
		},
		SessionCache: SessionCacheConfig{Driver: CacheDriverMemory, TTL: 12 * time.Hour, MaxSessions: 100},
		RateLimit:    RateLimitConfig{Enabled: true, RequestsPerSecond: 10, Burst: 20},
	}
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

log:
  level: "debug"
  format: "text"

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  jwt_issuer: "parla-backend"

backend:
  base_url: "https://parla.example.com/api"

translation:
  provider: "mymemory"
  email: "dev@example.com"

sync:
  source_language: "EN"
  target_language: "es"
  lookup_interval: "350ms"

session_cache:
  driver: "redis"
  ttl: "2h"

redis:
  addr: "redis:6379"
  db: 3
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv(PathEnv, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("server.write_timeout = %v, want default 30s", cfg.Server.WriteTimeout)
	}

	if cfg.Auth.JWTIssuer != "parla-backend" {
		t.Errorf("auth.jwt_issuer = %q", cfg.Auth.JWTIssuer)
	}
	if cfg.Backend.BaseURL != "https://parla.example.com/api" {
		t.Errorf("backend.base_url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Translation.Email != "dev@example.com" {
		t.Errorf("translation.email = %q", cfg.Translation.Email)
	}

	if cfg.Sync.SourceLanguage != "en" {
		t.Errorf("sync.source_language = %q, want normalized %q", cfg.Sync.SourceLanguage, "en")
	}
	if cfg.Sync.TargetLanguage != "es" {
		t.Errorf("sync.target_language = %q, want %q", cfg.Sync.TargetLanguage, "es")
	}
	if cfg.Sync.LookupInterval != 350*time.Millisecond {
		t.Errorf("sync.lookup_interval = %v, want 350ms", cfg.Sync.LookupInterval)
	}
	if cfg.Sync.MaxRetries != 1 {
		t.Errorf("sync.max_retries = %d, want default 1", cfg.Sync.MaxRetries)
	}

	if cfg.SessionCache.Driver != CacheDriverRedis {
		t.Errorf("session_cache.driver = %q, want %q", cfg.SessionCache.Driver, CacheDriverRedis)
	}
	if cfg.SessionCache.TTL != 2*time.Hour {
		t.Errorf("session_cache.ttl = %v, want 2h", cfg.SessionCache.TTL)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 3 {
		t.Errorf("redis = %+v", cfg.Redis)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv(PathEnv, path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("SYNC_LOOKUP_INTERVAL", "1s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Sync.LookupInterval != time.Second {
		t.Errorf("sync.lookup_interval = %v, want 1s (ENV override)", cfg.Sync.LookupInterval)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv(PathEnv, "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Sync.LookupInterval != 200*time.Millisecond {
		t.Errorf("sync.lookup_interval = %v, want 200ms (default)", cfg.Sync.LookupInterval)
	}
	if cfg.SessionCache.Driver != CacheDriverMemory {
		t.Errorf("session_cache.driver = %q, want memory (default)", cfg.SessionCache.Driver)
	}
	if cfg.Translation.Provider != TranslationMyMemory {
		t.Errorf("translation.provider = %q, want mymemory (default)", cfg.Translation.Provider)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	validEnv(t)
	t.Setenv(PathEnv, "")

	if _, err := Load("/nonexistent/parla.yaml"); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_EnvPathNotFound(t *testing.T) {
	validEnv(t)
	t.Setenv(PathEnv, "/nonexistent/parla.yaml")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing PARLA_CONFIG file")
	}
}

func TestLoad_ArgumentBeatsEnvPath(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv(PathEnv, "/nonexistent/parla.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090 from the named file", cfg.Server.Port)
	}
}

func TestLoad_DefaultPathIsRead(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, validYAML)
	t.Setenv(PathEnv, "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090 from %s", cfg.Server.Port, DefaultPath)
	}
}

func TestUsage_ListsEnvVars(t *testing.T) {
	usage := Usage()
	for _, name := range []string{"AUTH_JWT_SECRET", "SYNC_LOOKUP_INTERVAL", "SESSION_CACHE_DRIVER"} {
		if !strings.Contains(usage, name) {
			t.Errorf("usage does not mention %s", name)
		}
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv(PathEnv, "")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"jwt secret too short", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"jwt secret empty", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"backend url without scheme", func(c *Config) { c.Backend.BaseURL = "localhost:3000" }},
		{"backend url ftp", func(c *Config) { c.Backend.BaseURL = "ftp://example.com" }},
		{"unknown translation provider", func(c *Config) { c.Translation.Provider = "google" }},
		{"empty source language", func(c *Config) { c.Sync.SourceLanguage = "  " }},
		{"negative lookup interval", func(c *Config) { c.Sync.LookupInterval = -time.Second }},
		{"negative retries", func(c *Config) { c.Sync.MaxRetries = -1 }},
		{"zero idle timeout", func(c *Config) { c.Sync.IdleTimeout = 0 }},
		{"zero sync timeout", func(c *Config) { c.Sync.Timeout = 0 }},
		{"unknown cache driver", func(c *Config) { c.SessionCache.Driver = "sqlite" }},
		{"memory without capacity", func(c *Config) { c.SessionCache.MaxSessions = 0 }},
		{"redis without addr", func(c *Config) {
			c.SessionCache.Driver = CacheDriverRedis
			c.Redis.Addr = ""
		}},
		{"postgres without dsn", func(c *Config) { c.SessionCache.Driver = CacheDriverPostgres }},
		{"negative ttl", func(c *Config) { c.SessionCache.TTL = -time.Minute }},
		{"rate limit zero burst", func(c *Config) { c.RateLimit.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_ZeroLookupIntervalAllowed(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Sync.LookupInterval = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_PostgresWithDSN(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.SessionCache.Driver = CacheDriverPostgres
	cfg.Database.DSN = "postgres://u:p@localhost:5432/parla"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RateLimitDisabledSkipsChecks(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.RateLimit = RateLimitConfig{Enabled: false}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := SplitList(" GET, POST ,,OPTIONS ")
	want := []string{"GET", "POST", "OPTIONS"}
	if len(got) != len(want) {
		t.Fatalf("SplitList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
