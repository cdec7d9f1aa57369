// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestAll_PreservesOrderWithFailingMiddle(t *testing.T) {
	t.Parallel()

	e := New(0, zerolog.Nop())
	keys := []string{"a", "b", "c"}

	// a finishes last, c first, b fails.
	delays := map[string]time.Duration{"a": 40 * time.Millisecond, "b": 10 * time.Millisecond, "c": 0}
	lookup := func(_ context.Context, k string) (string, error) {
		time.Sleep(delays[k])
		if k == "b" {
			return "", errors.New("provider down")
		}
		return "enriched-" + k, nil
	}

	got := All(context.Background(), e, "test", keys, lookup, func(k string) string { return "default-" + k })

	want := []string{"enriched-a", "default-b", "enriched-c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("out[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAll_DispatchesAllBeforeAwaiting(t *testing.T) {
	t.Parallel()

	const n = 20
	e := New(0, zerolog.Nop())
	keys := make([]int, n)
	for i := range keys {
		keys[i] = i
	}

	// Every lookup blocks until all n have started; this only completes if
	// the enricher runs them concurrently.
	var started sync.WaitGroup
	started.Add(n)
	allStarted := make(chan struct{})
	go func() {
		started.Wait()
		close(allStarted)
	}()

	lookup := func(_ context.Context, k int) (int, error) {
		started.Done()
		select {
		case <-allStarted:
			return k * 10, nil
		case <-time.After(5 * time.Second):
			return 0, errors.New("lookups were serialized")
		}
	}

	got := All(context.Background(), e, "barrier", keys, lookup, func(int) int { return -1 })
	for i, v := range got {
		if v != i*10 {
			t.Errorf("out[%d] = %d, want %d", i, v, i*10)
		}
	}
}

func TestAll_RespectsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	e := New(3, zerolog.Nop())
	keys := make([]int, 12)
	for i := range keys {
		keys[i] = i
	}

	var inFlight, peak atomic.Int32
	lookup := func(_ context.Context, k int) (int, error) {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return k, nil
	}

	got := All(context.Background(), e, "limited", keys, lookup, func(int) int { return -1 })
	if p := peak.Load(); p > 3 {
		t.Errorf("peak in-flight = %d, want <= 3", p)
	}
	for i, v := range got {
		if v != i {
			t.Errorf("out[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestAll_EdgeCases(t *testing.T) {
	t.Parallel()

	e := New(0, zerolog.Nop())

	tests := []struct {
		name   string
		keys   []int
		lookup Lookup[int, string]
		want   []string
	}{
		{
			name:   "empty input",
			keys:   nil,
			lookup: func(context.Context, int) (string, error) { return "x", nil },
			want:   []string{},
		},
		{
			name:   "all fail",
			keys:   []int{1, 2},
			lookup: func(context.Context, int) (string, error) { return "partial", errors.New("x") },
			want:   []string{"d1", "d2"},
		},
		{
			name: "panic becomes default",
			keys: []int{1, 2, 3},
			lookup: func(_ context.Context, k int) (string, error) {
				if k == 2 {
					panic("bad payload")
				}
				return fmt.Sprintf("v%d", k), nil
			},
			want: []string{"v1", "d2", "v3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := All(context.Background(), e, "edge", tt.keys, tt.lookup, func(k int) string { return fmt.Sprintf("d%d", k) })
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("out[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCompact(t *testing.T) {
	t.Parallel()

	one, three := 1, 3
	in := []*int{&one, nil, &three, nil}
	got := Compact(in, func(p *int) bool { return p != nil })
	if len(got) != 2 || *got[0] != 1 || *got[1] != 3 {
		t.Errorf("Compact() = %v, want [1 3] in order", got)
	}
}
