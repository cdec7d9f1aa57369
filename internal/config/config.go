// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Provider  ProviderConfig  `koanf:"provider"`
	Fetch     FetchConfig     `koanf:"fetch"`
	Enrich    EnrichConfig    `koanf:"enrich"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Store     StoreConfig     `koanf:"store"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`

	// Timeout bounds reading a request and writing its response. It must
	// outlast EnrichmentPhases lookups that each exhaust their retries, or
	// degraded batch responses are cut off.
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds CORS and inbound rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// ProviderConfig configures the movie metadata provider.
type ProviderConfig struct {
	BaseURL      string `koanf:"base_url"`
	APIKey       string `koanf:"api_key"`
	ImageBaseURL string `koanf:"image_base_url"`

	// Language is sent with every lookup (e.g. fr-FR).
	Language string `koanf:"language"`

	// Region selects the watch-provider country block (e.g. FR).
	Region string `koanf:"region"`

	// Timeout bounds a single HTTP request; retries are counted separately.
	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond and Burst shape outbound traffic. 0 disables limiting.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// FetchConfig configures bounded retry for external lookups.
type FetchConfig struct {
	MaxAttempts int           `koanf:"max_attempts"`
	Delay       time.Duration `koanf:"delay"`
}

// EnrichConfig configures enrichment fan-out.
type EnrichConfig struct {
	// Concurrency caps in-flight lookups per batch. 0 means one goroutine per
	// item, all dispatched before any is awaited. A positive cap bounds upstream
	// load, but the dispatch loop then blocks until a slot frees, so a batch
	// larger than the cap takes several rounds of lookup latency.
	Concurrency int `koanf:"concurrency"`
}

// CacheConfig configures the provider response cache.
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Capacity int           `koanf:"capacity"`
	TTL      time.Duration `koanf:"ttl"`
}

// RecommendConfig configures the hybrid recommender and its data sources.
type RecommendConfig struct {
	ItemsPath       string `koanf:"items_path"`
	PreferencesPath string `koanf:"preferences_path"`

	// ReloadInterval re-reads the sources and swaps the snapshot. 0 loads once.
	ReloadInterval time.Duration `koanf:"reload_interval"`

	DefaultCount int `koanf:"default_count"`
	MaxCount     int `koanf:"max_count"`

	// Filter is an optional CEL expression over `item`; candidates for which it
	// evaluates to false are dropped.
	Filter string `koanf:"filter"`
}

// StoreConfig selects and configures the favorites/profile store.
type StoreConfig struct {
	Backend string `koanf:"backend"` // badger or redis

	BadgerPath     string `koanf:"badger_path"`
	BadgerInMemory bool   `koanf:"badger_in_memory"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// ConflictRetries bounds optimistic transaction retries on a favorites toggle.
	ConflictRetries int `koanf:"conflict_retries"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Store backends.
const (
	StoreBackendBadger = "badger"
	StoreBackendRedis  = "redis"
)

// Load reads configuration from defaults, an optional file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// LookupBudget is the longest one provider lookup can take before it is
// reported exhausted: every attempt hitting the request timeout, plus the
// waits between attempts.
func (c *Config) LookupBudget() time.Duration {
	attempts := time.Duration(c.Fetch.MaxAttempts)
	if attempts < 1 {
		return 0
	}
	return attempts*c.Provider.Timeout + (attempts-1)*c.Fetch.Delay
}

// EnrichmentPhases is the number of sequential enrichment passes a single
// request can run (details or related lookups, then watch providers).
const EnrichmentPhases = 2

// ShouldWarnAboutCORS reports whether any origin is the "*" wildcard.
func (c *Config) ShouldWarnAboutCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
