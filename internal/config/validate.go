package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := validateURL(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("backend.base_url: %w", err)
	}

	switch c.Translation.Provider {
	case TranslationMyMemory, TranslationNone:
	default:
		return fmt.Errorf("translation.provider must be %q or %q (got %q)", TranslationMyMemory, TranslationNone, c.Translation.Provider)
	}

	if err := c.Sync.validate(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if err := c.validateSessionCache(); err != nil {
		return fmt.Errorf("session_cache: %w", err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit: requests_per_second and burst must be > 0 when enabled")
	}

	return nil
}

func (s *SyncConfig) validate() error {
	s.SourceLanguage = strings.ToLower(strings.TrimSpace(s.SourceLanguage))
	s.TargetLanguage = strings.ToLower(strings.TrimSpace(s.TargetLanguage))

	if s.SourceLanguage == "" || s.TargetLanguage == "" {
		return fmt.Errorf("source_language and target_language are required")
	}
	if s.LookupInterval < 0 {
		return fmt.Errorf("lookup_interval must be >= 0 (got %s)", s.LookupInterval)
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", s.MaxRetries)
	}
	if s.IdleTimeout <= 0 || s.SweepInterval <= 0 {
		return fmt.Errorf("idle_timeout and sweep_interval must be > 0")
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", s.Timeout)
	}
	return nil
}

func (c *Config) validateSessionCache() error {
	switch c.SessionCache.Driver {
	case CacheDriverMemory:
		if c.SessionCache.MaxSessions <= 0 {
			return fmt.Errorf("max_sessions must be > 0 (got %d)", c.SessionCache.MaxSessions)
		}
	case CacheDriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis driver")
		}
	case CacheDriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown driver %q", c.SessionCache.Driver)
	}
	if c.SessionCache.TTL < 0 {
		return fmt.Errorf("ttl must be >= 0 (got %s)", c.SessionCache.TTL)
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
