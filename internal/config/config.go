package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	Auth         AuthConfig         `yaml:"auth"`
	Backend      BackendConfig      `yaml:"backend"`
	Translation  TranslationConfig  `yaml:"translation"`
	Definition   DefinitionConfig   `yaml:"definition"`
	Sync         SyncConfig         `yaml:"sync"`
	SessionCache SessionCacheConfig `yaml:"session_cache"`
	Redis        RedisConfig        `yaml:"redis"`
	Database     DatabaseConfig     `yaml:"database"`
	CORS         CORSConfig         `yaml:"cors"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AuthConfig holds settings for validating backend-issued access tokens.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	// JWTIssuer is checked when non-empty.
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"parla"`
}

// BackendConfig points at the Parla backend REST API.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-default:"http://localhost:3000/api"`
	Timeout time.Duration `yaml:"timeout"  env:"BACKEND_TIMEOUT"  env-default:"10s"`
}

// Translation providers.
const (
	TranslationMyMemory = "mymemory"
	TranslationNone     = "none"
)

// TranslationConfig selects and configures the translation provider.
type TranslationConfig struct {
	Provider string        `yaml:"provider" env:"TRANSLATION_PROVIDER" env-default:"mymemory"`
	BaseURL  string        `yaml:"base_url" env:"TRANSLATION_BASE_URL" env-default:"https://api.mymemory.translated.net"`
	Email    string        `yaml:"email"    env:"TRANSLATION_EMAIL"`
	Timeout  time.Duration `yaml:"timeout"  env:"TRANSLATION_TIMEOUT"  env-default:"10s"`
}

// DefinitionConfig configures the dictionary (definition) provider.
type DefinitionConfig struct {
	BaseURL string        `yaml:"base_url" env:"DEFINITION_BASE_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries"`
	Timeout time.Duration `yaml:"timeout"  env:"DEFINITION_TIMEOUT"  env-default:"10s"`
}

// SyncConfig holds synchronization orchestrator settings.
type SyncConfig struct {
	SourceLanguage string        `yaml:"source_language" env:"SYNC_SOURCE_LANGUAGE" env-default:"en"`
	TargetLanguage string        `yaml:"target_language" env:"SYNC_TARGET_LANGUAGE" env-default:"it"`
	LookupInterval time.Duration `yaml:"lookup_interval" env:"SYNC_LOOKUP_INTERVAL" env-default:"200ms"`
	MaxRetries     int           `yaml:"max_retries"     env:"SYNC_MAX_RETRIES"     env-default:"1"`
	RetryWait      time.Duration `yaml:"retry_wait"      env:"SYNC_RETRY_WAIT"      env-default:"500ms"`
	// IdleTimeout evicts in-memory orchestrators untouched for this long.
	IdleTimeout   time.Duration `yaml:"idle_timeout"   env:"SYNC_IDLE_TIMEOUT"   env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SYNC_SWEEP_INTERVAL" env-default:"1m"`
	// Timeout bounds a sync started in the background by the HTTP API.
	Timeout time.Duration `yaml:"timeout" env:"SYNC_TIMEOUT" env-default:"10m"`
}

// Session cache drivers.
const (
	CacheDriverMemory   = "memory"
	CacheDriverRedis    = "redis"
	CacheDriverPostgres = "postgres"
)

// SessionCacheConfig selects the session cache backend.
type SessionCacheConfig struct {
	Driver      string        `yaml:"driver"       env:"SESSION_CACHE_DRIVER"       env-default:"memory"`
	TTL         time.Duration `yaml:"ttl"          env:"SESSION_CACHE_TTL"          env-default:"12h"`
	MaxSessions int64         `yaml:"max_sessions" env:"SESSION_CACHE_MAX_SESSIONS" env-default:"10000"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used by the
// postgres session cache driver.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RateLimitConfig holds per-client request limits for the HTTP API.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"             env-default:"true"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"                 env-default:"10"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"               env-default:"20"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"1m"`
}

// SplitList splits a comma-separated setting, trimming blanks.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
