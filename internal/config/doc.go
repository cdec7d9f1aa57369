// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config provides centralized configuration management for Cinematch.

Configuration is layered with koanf, lowest precedence first:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/cinematch/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

The resulting Config is validated before Load returns.

# Sections

  - ServerConfig: HTTP listener and shutdown timing
  - SecurityConfig: CORS origins and per-IP rate limiting
  - ProviderConfig: movie metadata provider (TMDB v3 compatible) endpoint,
    credentials, language and region, plus the outbound rate limit
  - FetchConfig: bounded retry for provider lookups
  - EnrichConfig: fan-out concurrency for enrichment
  - CacheConfig: provider response cache
  - RecommendConfig: catalog and preference sources, reload interval and the
    optional CEL candidate filter
  - StoreConfig: favorites/profile store backend (badger or redis)
  - LoggingConfig: zerolog level and format

# Example

	TMDB_API_KEY=xxxx FETCH_MAX_ATTEMPTS=3 STORE_BACKEND=redis REDIS_ADDR=localhost:6379 ./cinematch
*/
package config
