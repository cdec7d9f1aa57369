// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Reload outcomes, used as the metrics label.
const (
	ReloadSuccess = "success"
	ReloadMissing = "missing"
	ReloadError   = "error"
)

// SnapshotLoader builds a snapshot from the underlying files. *Source
// implements it.
type SnapshotLoader interface {
	Load(ctx context.Context) (*recommend.Snapshot, error)
}

// Reloader installs freshly loaded snapshots into a Recommender. Reloads are
// serialized so a periodic reload and a manual one never interleave.
type Reloader struct {
	mu          sync.Mutex
	source      SnapshotLoader
	recommender *recommend.Recommender
	logger      zerolog.Logger
	lastResult  string
	lastAt      time.Time
}

// NewReloader creates a Reloader.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewReloader(source SnapshotLoader, rec *recommend.Recommender, logger zerolog.Logger) *Reloader {
	return &Reloader{source: source, recommender: rec, logger: logger}
}

// Reload reads the sources and swaps the served snapshot.
//
// A missing source installs the empty snapshot and is not an error: the
// service keeps answering, with empty recommendations. Any other failure
// keeps the previous snapshot and is returned.
func (r *Reloader) Reload(ctx context.Context) (models.SnapshotStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	snap, err := r.source.Load(ctx)
	switch {
	case err == nil:
		r.record(ReloadSuccess)
	case errors.Is(err, ErrSourceMissing):
		r.logger.Warn().Err(err).Msg("Catalog source missing, serving empty recommendations")
		snap = recommend.EmptySnapshot()
		r.record(ReloadMissing)
	default:
		r.logger.Error().Err(err).Msg("Catalog reload failed, keeping previous snapshot")
		r.record(ReloadError)
		return r.recommender.Stats(), err
	}

	if snap == nil {
		snap = recommend.EmptySnapshot()
	}
	r.recommender.Load(snap)
	r.logger.Debug().Dur("duration", time.Since(start)).Msg("Catalog reload complete")
	return snap.Stats(), nil
}

func (r *Reloader) record(result string) {
	r.lastResult = result
	r.lastAt = time.Now()
	metrics.RecordReload(result)
}

// LastResult returns the outcome and time of the most recent reload. The
// result is empty before the first reload.
func (r *Reloader) LastResult() (string, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastResult, r.lastAt
}
