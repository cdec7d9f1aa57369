// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
)

func TestToggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		favs       []int
		movieID    int
		want       []int
		wantStatus models.ToggleStatus
	}{
		{"add to empty", []int{}, 5, []int{5}, models.FavoriteAdded},
		{"add to nil", nil, 5, []int{5}, models.FavoriteAdded},
		{"append keeps order", []int{3, 1}, 2, []int{3, 1, 2}, models.FavoriteAdded},
		{"remove middle keeps order", []int{3, 1, 2}, 1, []int{3, 2}, models.FavoriteRemoved},
		{"remove last", []int{7}, 7, []int{}, models.FavoriteRemoved},
		{"remove only first duplicate", []int{4, 9, 4}, 4, []int{9, 4}, models.FavoriteRemoved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var before []int
			if tt.favs != nil {
				before = append([]int{}, tt.favs...)
			}

			got, status := toggle(tt.favs, tt.movieID)
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			if !equalInts(got, tt.want) {
				t.Errorf("toggle(%v, %d) = %v, want %v", tt.favs, tt.movieID, got, tt.want)
			}
			if tt.favs != nil && !equalInts(tt.favs, before) {
				t.Errorf("input modified: %v", tt.favs)
			}
		})
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), &config.StoreConfig{Backend: "cassandra"}, zerolog.Nop())
	if err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestNew_BadgerInMemory(t *testing.T) {
	t.Parallel()

	s, err := New(context.Background(), &config.StoreConfig{
		Backend:        config.StoreBackendBadger,
		BadgerInMemory: true,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if _, ok := s.(*BadgerStore); !ok {
		t.Errorf("New returned %T, want *BadgerStore", s)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
