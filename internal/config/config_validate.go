// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"net"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateProvider(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateTimeoutBudget(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateProvider() error {
	p := c.Provider
	if p.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if err := validateHTTPURL(p.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(p.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if p.Region == "" {
		return fmt.Errorf("TMDB_REGION is required")
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive, got %v", p.Timeout)
	}
	if p.RequestsPerSecond < 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must not be negative, got %v", p.RequestsPerSecond)
	}
	if p.RequestsPerSecond > 0 && p.Burst < 1 {
		return fmt.Errorf("TMDB_BURST must be at least 1 when rate limiting is enabled, got %d", p.Burst)
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.MaxAttempts < 1 {
		return fmt.Errorf("FETCH_MAX_ATTEMPTS must be at least 1, got %d", c.Fetch.MaxAttempts)
	}
	if c.Fetch.Delay < 0 {
		return fmt.Errorf("FETCH_DELAY must not be negative, got %v", c.Fetch.Delay)
	}
	if c.Enrich.Concurrency < 0 {
		return fmt.Errorf("ENRICH_CONCURRENCY must not be negative, got %d", c.Enrich.Concurrency)
	}
	return nil
}

// validateTimeoutBudget rejects a server timeout that a request whose
// enrichment degrades could outrun.
func (c *Config) validateTimeoutBudget() error {
	need := EnrichmentPhases * c.LookupBudget()
	if c.Server.Timeout <= need {
		return fmt.Errorf("HTTP_TIMEOUT must exceed %v (%d x (%d attempts x TMDB_TIMEOUT %v + %d x FETCH_DELAY %v)), got %v",
			need, EnrichmentPhases, c.Fetch.MaxAttempts, c.Provider.Timeout, c.Fetch.MaxAttempts-1, c.Fetch.Delay, c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be at least 1 when the cache is enabled, got %d", c.Cache.Capacity)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.ItemsPath == "" || r.PreferencesPath == "" {
		return fmt.Errorf("ITEMS_PATH and PREFERENCES_PATH are required")
	}
	if r.ReloadInterval < 0 {
		return fmt.Errorf("CATALOG_RELOAD_INTERVAL must not be negative, got %v", r.ReloadInterval)
	}
	if r.MaxCount < 1 {
		return fmt.Errorf("RECOMMEND_MAX_COUNT must be at least 1, got %d", r.MaxCount)
	}
	if r.DefaultCount < 1 || r.DefaultCount > r.MaxCount {
		return fmt.Errorf("RECOMMEND_DEFAULT_COUNT must be between 1 and %d, got %d", r.MaxCount, r.DefaultCount)
	}
	return nil
}

func (c *Config) validateStore() error {
	s := c.Store
	switch s.Backend {
	case StoreBackendBadger:
		if !s.BadgerInMemory && s.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required for the badger store")
		}
	case StoreBackendRedis:
		if _, _, err := net.SplitHostPort(s.RedisAddr); err != nil {
			return fmt.Errorf("REDIS_ADDR must be host:port: %w", err)
		}
		if s.RedisDB < 0 {
			return fmt.Errorf("REDIS_DB must not be negative, got %d", s.RedisDB)
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendBadger, StoreBackendRedis, s.Backend)
	}
	if s.ConflictRetries < 1 {
		return fmt.Errorf("STORE_CONFLICT_RETRIES must be at least 1, got %d", s.ConflictRetries)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
