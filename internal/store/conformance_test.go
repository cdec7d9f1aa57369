// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/tomtom215/cinematch/internal/models"
)

// runStoreConformance exercises the Store contract against any backend.
// newStore must return an empty store.
func runStoreConformance(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("unknown user has no favorites", func(t *testing.T) {
		s := newStore(t)
		favs, err := s.Favorites(context.Background(), "nobody")
		if err != nil {
			t.Fatalf("Favorites: %v", err)
		}
		if favs == nil || len(favs) != 0 {
			t.Errorf("Favorites = %#v, want empty non-nil", favs)
		}
	})

	t.Run("toggle adds then removes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		steps := []struct {
			movieID    int
			wantStatus models.ToggleStatus
			wantFavs   []int
		}{
			{603, models.FavoriteAdded, []int{603}},
			{27205, models.FavoriteAdded, []int{603, 27205}},
			{155, models.FavoriteAdded, []int{603, 27205, 155}},
			{27205, models.FavoriteRemoved, []int{603, 155}},
			{27205, models.FavoriteAdded, []int{603, 155, 27205}},
		}
		for _, step := range steps {
			res, err := s.ToggleFavorite(ctx, "u1", step.movieID)
			if err != nil {
				t.Fatalf("ToggleFavorite(%d): %v", step.movieID, err)
			}
			if res.Status != step.wantStatus || res.MovieID != step.movieID || res.UserID != "u1" {
				t.Errorf("ToggleFavorite(%d) = %+v", step.movieID, res)
			}
			favs, err := s.Favorites(ctx, "u1")
			if err != nil {
				t.Fatalf("Favorites: %v", err)
			}
			if !equalInts(favs, step.wantFavs) {
				t.Errorf("after toggling %d: favorites = %v, want %v", step.movieID, favs, step.wantFavs)
			}
		}

		other, _ := s.Favorites(ctx, "u2")
		if len(other) != 0 {
			t.Errorf("favorites leaked to another user: %v", other)
		}
	})

	t.Run("concurrent toggles lose no update", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const n = 20
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 1; i <= n; i++ {
			wg.Add(1)
			go func(movieID int) {
				defer wg.Done()
				if _, err := s.ToggleFavorite(ctx, "busy", movieID); err != nil {
					errs <- err
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("ToggleFavorite: %v", err)
		}

		favs, err := s.Favorites(ctx, "busy")
		if err != nil {
			t.Fatalf("Favorites: %v", err)
		}
		sort.Ints(favs)
		if len(favs) != n {
			t.Fatalf("got %d favorites, want %d: %v", len(favs), n, favs)
		}
		for i, id := range favs {
			if id != i+1 {
				t.Fatalf("favorites = %v, want 1..%d", favs, n)
			}
		}
	})

	t.Run("profile round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if _, err := s.Profile(ctx, "u1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Profile(missing) error = %v, want ErrNotFound", err)
		}

		p := &models.Profile{UserID: "u1", Username: "neo", Email: "neo@example.com"}
		if err := s.SaveProfile(ctx, p); err != nil {
			t.Fatalf("SaveProfile: %v", err)
		}
		got, err := s.Profile(ctx, "u1")
		if err != nil {
			t.Fatalf("Profile: %v", err)
		}
		if *got != *p {
			t.Errorf("Profile = %+v, want %+v", got, p)
		}

		p.Email = "trinity@example.com"
		if err := s.SaveProfile(ctx, p); err != nil {
			t.Fatalf("SaveProfile (update): %v", err)
		}
		got, _ = s.Profile(ctx, "u1")
		if got.Email != "trinity@example.com" {
			t.Errorf("Email = %q after update", got.Email)
		}
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		if err := s.Ping(context.Background()); err != nil {
			t.Errorf("Ping: %v", err)
		}
	})
}
