// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// CandidateFilter decides whether a merged candidate may be returned. It can
// only remove candidates, never add or reorder them.
type CandidateFilter interface {
	Keep(ctx context.Context, c models.Candidate) bool
}

// Recommender serves recommendations from the current Snapshot. It is safe
// for concurrent use; Load may be called while requests are running.
type Recommender struct {
	snapshot atomic.Pointer[Snapshot]
	filter   CandidateFilter
	logger   zerolog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithFilter installs a candidate filter applied to hybrid results.
func WithFilter(f CandidateFilter) Option {
	return func(r *Recommender) {
		r.filter = f
	}
}

// New creates a Recommender serving an empty snapshot until Load is called.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(logger zerolog.Logger, opts ...Option) *Recommender {
	r := &Recommender{logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	r.snapshot.Store(EmptySnapshot())
	return r
}

// Load atomically replaces the served snapshot.
func (r *Recommender) Load(s *Snapshot) {
	if s == nil {
		s = EmptySnapshot()
	}
	r.snapshot.Store(s)

	stats := s.Stats()
	metrics.RecordSnapshot(stats.Users, stats.Items, s.builtAt)
	r.logger.Info().
		Int("users", stats.Users).
		Int("items", stats.Items).
		Int("preferences", stats.Preferences).
		Msg("Recommender snapshot loaded")
}

// Snapshot returns the snapshot currently served.
func (r *Recommender) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// Stats summarizes the snapshot currently served.
func (r *Recommender) Stats() models.SnapshotStats {
	return r.Snapshot().Stats()
}

// RecommendBySimilarity returns collaborative candidates from the current snapshot.
func (r *Recommender) RecommendBySimilarity(userID, k int) []models.Candidate {
	return r.Snapshot().RecommendBySimilarity(userID, k)
}

// RecommendByContent returns genre-based candidates from the current snapshot.
func (r *Recommender) RecommendByContent(userID, k int) []models.Candidate {
	return r.Snapshot().RecommendByContent(userID, k)
}

// GetRecommendations returns up to n hybrid candidates for userID, applying
// the candidate filter when one is configured.
func (r *Recommender) GetRecommendations(ctx context.Context, userID, n int) []models.Candidate {
	snap := r.Snapshot()

	var keep func(models.Candidate) bool
	if r.filter != nil {
		keep = func(c models.Candidate) bool { return r.filter.Keep(ctx, c) }
	}

	out := snap.recommend(userID, n, keep)
	metrics.RecordRecommendation("hybrid", len(out))
	logging.CtxLogger(ctx, r.logger).Debug().
		Int("user_id", userID).
		Int("requested", n).
		Int("returned", len(out)).
		Msg("Hybrid recommendations built")
	return out
}
