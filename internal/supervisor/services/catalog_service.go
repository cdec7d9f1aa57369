// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/models"
)

// CatalogReloader rebuilds the recommender snapshot. *catalog.Reloader
// implements it.
type CatalogReloader interface {
	Reload(ctx context.Context) (models.SnapshotStats, error)
}

// CatalogService loads the recommender snapshot on start and then every
// interval. A zero interval loads once and idles until shutdown.
//
// Reload failures are logged and never returned: the reloader keeps the
// previous snapshot, and restarting the service would only repeat the
// initial load.
type CatalogService struct {
	reloader CatalogReloader
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCatalogService creates a CatalogService.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalogService(reloader CatalogReloader, interval time.Duration, logger zerolog.Logger) *CatalogService {
	if interval < 0 {
		interval = 0
	}
	return &CatalogService{
		reloader: reloader,
		interval: interval,
		logger:   logger.With().Str("service", "catalog").Logger(),
		name:     "catalog-service",
	}
}

// Serve implements suture.Service.
func (s *CatalogService) Serve(ctx context.Context) error {
	s.reload(ctx, "startup")

	if s.interval == 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.reload(ctx, "scheduled")
		}
	}
}

func (s *CatalogService) reload(ctx context.Context, trigger string) {
	stats, err := s.reloader.Reload(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("Catalog reload failed")
		return
	}
	s.logger.Info().
		Str("trigger", trigger).
		Int("users", stats.Users).
		Int("items", stats.Items).
		Int("preferences", stats.Preferences).
		Msg("Catalog snapshot loaded")
}

// String implements fmt.Stringer.
func (s *CatalogService) String() string {
	return s.name
}
