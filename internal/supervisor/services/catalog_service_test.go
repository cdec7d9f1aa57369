// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/models"
)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (c *countingReloader) Reload(context.Context) (models.SnapshotStats, error) {
	c.calls.Add(1)
	return models.SnapshotStats{Users: 2, Items: 3, Preferences: 4}, c.err
}

func runFor(t *testing.T, svc interface{ Serve(context.Context) error }, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Serve() = %v, want context.DeadlineExceeded", err)
	}
}

func TestCatalogService_Serve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		interval time.Duration
		err      error
		minCalls int32
		maxCalls int32
	}{
		{name: "zero interval loads once", interval: 0, minCalls: 1, maxCalls: 1},
		{name: "negative interval loads once", interval: -time.Second, minCalls: 1, maxCalls: 1},
		{name: "periodic reload", interval: 20 * time.Millisecond, minCalls: 3, maxCalls: 100},
		{name: "failures do not stop the loop", interval: 20 * time.Millisecond, err: errors.New("corrupt"), minCalls: 3, maxCalls: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &countingReloader{err: tt.err}
			runFor(t, NewCatalogService(r, tt.interval, zerolog.Nop()), 150*time.Millisecond)

			got := r.calls.Load()
			if got < tt.minCalls || got > tt.maxCalls {
				t.Errorf("Reload calls = %d, want between %d and %d", got, tt.minCalls, tt.maxCalls)
			}
		})
	}
}

func TestCatalogService_String(t *testing.T) {
	t.Parallel()

	if got := NewCatalogService(&countingReloader{}, 0, zerolog.Nop()).String(); got != "catalog-service" {
		t.Errorf("String() = %q", got)
	}
}
