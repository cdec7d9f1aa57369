// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinematch/config.yaml",
	"/etc/cinematch/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         3 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Provider: ProviderConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			APIKey:            "",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			Language:          "fr-FR",
			Region:            "FR",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 40,
			Burst:             20,
		},
		Fetch: FetchConfig{
			MaxAttempts: 5,
			Delay:       5 * time.Second,
		},
		Enrich: EnrichConfig{
			Concurrency: 0,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 2048,
			TTL:      10 * time.Minute,
		},
		Recommend: RecommendConfig{
			ItemsPath:       "data/items.csv",
			PreferencesPath: "data/users.csv",
			ReloadInterval:  0,
			DefaultCount:    5,
			MaxCount:        100,
			Filter:          "",
		},
		Store: StoreConfig{
			Backend:         StoreBackendBadger,
			BadgerPath:      "/data/cinematch",
			BadgerInMemory:  false,
			RedisAddr:       "localhost:6379",
			RedisDB:         0,
			ConflictRetries: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
// YAML lists are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Metadata provider
	"tmdb_api_key":             "provider.api_key",
	"tmdb_base_url":            "provider.base_url",
	"tmdb_image_base_url":      "provider.image_base_url",
	"tmdb_language":            "provider.language",
	"tmdb_region":              "provider.region",
	"tmdb_timeout":             "provider.timeout",
	"tmdb_requests_per_second": "provider.requests_per_second",
	"tmdb_burst":               "provider.burst",

	// Fetch and enrichment
	"fetch_max_attempts": "fetch.max_attempts",
	"fetch_delay":        "fetch.delay",
	"enrich_concurrency": "enrich.concurrency",

	// Cache
	"cache_enabled":  "cache.enabled",
	"cache_capacity": "cache.capacity",
	"cache_ttl":      "cache.ttl",

	// Recommender
	"items_path":              "recommend.items_path",
	"preferences_path":        "recommend.preferences_path",
	"catalog_reload_interval": "recommend.reload_interval",
	"recommend_default_count": "recommend.default_count",
	"recommend_max_count":     "recommend.max_count",
	"recommend_filter":        "recommend.filter",

	// Store
	"store_backend":          "store.backend",
	"badger_path":            "store.badger_path",
	"badger_in_memory":       "store.badger_in_memory",
	"redis_addr":             "store.redis_addr",
	"redis_password":         "store.redis_password",
	"redis_db":               "store.redis_db",
	"store_conflict_retries": "store.conflict_retries",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
//
//	TMDB_API_KEY -> provider.api_key
//	FETCH_MAX_ATTEMPTS -> fetch.max_attempts
//	HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
