// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ExpiringCache drops its expired entries on demand. *cache.LRU implements it.
type ExpiringCache interface {
	CleanupExpired() int
}

// CacheJanitorService sweeps expired provider responses so a cold cache does
// not hold stale bodies until they happen to be evicted.
type CacheJanitorService struct {
	cache    ExpiringCache
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor. A non-positive interval means 1m.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheJanitorService(c ExpiringCache, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitorService{
		cache:    c,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.cache.CleanupExpired(); n > 0 {
				s.logger.Debug().Int("removed", n).Msg("Expired cache entries removed")
			}
		}
	}
}

// String implements fmt.Stringer.
func (s *CacheJanitorService) String() string {
	return s.name
}
