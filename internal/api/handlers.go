// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/store"
)

// Aggregator is the read side of the service: provider lookups, favorites
// and recommendations. *aggregate.Aggregator implements it.
type Aggregator interface {
	Recommend(ctx context.Context, userID string) ([]models.EnrichedMovie, error)
	Search(ctx context.Context, query string) ([]models.EnrichedMovie, error)
	Favorites(ctx context.Context, userID string) ([]models.EnrichedMovie, error)
	Movie(ctx context.Context, id int) (models.EnrichedMovie, error)
	WatchProvidersIn(ctx context.Context, id int, region string) models.WatchProviders
	Hybrid(ctx context.Context, userID, n int, withProviders bool) []models.HybridRecommendation
}

// CatalogReloader rebuilds the recommender snapshot on demand.
// *catalog.Reloader implements it.
type CatalogReloader interface {
	Reload(ctx context.Context) (models.SnapshotStats, error)
}

// SnapshotStatter reports what the recommender is serving.
// *recommend.Recommender implements it.
type SnapshotStatter interface {
	Stats() models.SnapshotStats
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: welcome, liveness and readiness
//   - handlers_movies.go: search, movie details and watch providers
//   - handlers_favorites.go: favorites and profiles
//   - handlers_recommend.go: recommendations and catalog reload
type Handler struct {
	agg       Aggregator
	store     store.Store
	reloader  CatalogReloader
	snapshots SnapshotStatter
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a Handler. reloader may be nil, in which case the
// catalog reload endpoint reports 503.
func NewHandler(agg Aggregator, st store.Store, reloader CatalogReloader, snapshots SnapshotStatter, cfg *config.Config) *Handler {
	return &Handler{
		agg:       agg,
		store:     st,
		reloader:  reloader,
		snapshots: snapshots,
		config:    cfg,
		startTime: time.Now(),
	}
}

// recommendCounts returns the default and maximum n for hybrid
// recommendations.
func (h *Handler) recommendCounts() (def, maxN int) {
	def, maxN = 5, 100
	if h.config != nil {
		def, maxN = h.config.Recommend.DefaultCount, h.config.Recommend.MaxCount
	}
	return def, maxN
}
