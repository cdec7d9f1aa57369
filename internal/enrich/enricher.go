// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package enrich fans out one lookup per identifier and reassembles the
// results in input order.
//
// A failed lookup never fails the batch: its slot receives a neutral default
// supplied by the caller (an EnrichmentDefaulted event, logged and counted in
// metrics but not returned). Callers whose default means "omit" pass a zero
// value and filter with Compact.
package enrich

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Lookup resolves one key. Implementations are expected to do their own retry
// (typically through fetch.Fetcher) and return an error only once they give up.
type Lookup[K, V any] func(ctx context.Context, key K) (V, error)

// Enricher runs lookups concurrently.
type Enricher struct {
	concurrency int
	logger      zerolog.Logger
}

// New creates an Enricher. concurrency caps in-flight lookups per batch;
// 0 starts one goroutine per key.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(concurrency int, logger zerolog.Logger) *Enricher {
	if concurrency < 0 {
		concurrency = 0
	}
	return &Enricher{concurrency: concurrency, logger: logger}
}

// NewDefault creates an unbounded Enricher logging through the global logger.
func NewDefault() *Enricher {
	return New(0, logging.WithComponent("enrich"))
}

// All looks up every key and returns a slice where out[i] is the result for
// keys[i], or fallback(keys[i]) if that lookup failed. kind labels the batch in
// logs and metrics.
//
// All returns only after every lookup has finished. Individual failures do not
// cancel sibling lookups.
func All[K, V any](ctx context.Context, e *Enricher, kind string, keys []K, lookup Lookup[K, V], fallback func(K) V) []V {
	out := make([]V, len(keys))
	if len(keys) == 0 {
		return out
	}

	start := time.Now()
	var defaulted atomic.Int64

	var g errgroup.Group
	// With a limit, g.Go blocks until a running lookup returns.
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}

	for i, key := range keys {
		g.Go(func() error {
			v, err := safeLookup(ctx, lookup, key)
			if err != nil {
				defaulted.Add(1)
				logging.CtxLogger(ctx, e.logger).Warn().
					Err(err).
					Str("kind", kind).
					Int("index", i).
					Interface("key", key).
					Msg("Enrichment defaulted")
				out[i] = fallback(key)
				return nil
			}
			out[i] = v
			return nil
		})
	}

	// Tasks never return an error; Wait is only the join point.
	_ = g.Wait()

	n := int(defaulted.Load())
	metrics.RecordEnrichment(kind, time.Since(start), n)
	e.logger.Debug().
		Str("kind", kind).
		Int("items", len(keys)).
		Int("defaulted", n).
		Dur("duration", time.Since(start)).
		Msg("Enrichment batch complete")

	return out
}

// safeLookup converts a panicking lookup into an error so one bad item cannot
// take down the batch.
func safeLookup[K, V any](ctx context.Context, lookup Lookup[K, V], key K) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lookup panicked: %v", r)
		}
	}()
	return lookup(ctx, key)
}

// Compact returns the values for which keep reports true, preserving order.
func Compact[V any](vals []V, keep func(V) bool) []V {
	out := make([]V, 0, len(vals))
	for _, v := range vals {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
