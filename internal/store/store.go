// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
)

var (
	// ErrNotFound is returned when a profile does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a toggle keeps losing to concurrent writers.
	ErrConflict = errors.New("too many concurrent updates")
)

// DefaultConflictRetries bounds optimistic transaction retries.
const DefaultConflictRetries = 10

// Store persists favorites and profiles.
type Store interface {
	// Favorites returns the user's favorite movie IDs in insertion order.
	// Unknown users have no favorites.
	Favorites(ctx context.Context, userID string) ([]int, error)

	// ToggleFavorite adds movieID when absent and removes it when present.
	ToggleFavorite(ctx context.Context, userID string, movieID int) (models.ToggleResult, error)

	Profile(ctx context.Context, userID string) (*models.Profile, error)
	SaveProfile(ctx context.Context, p *models.Profile) error

	Ping(ctx context.Context) error
	Close() error
}

const (
	favoritesKeyPrefix = "favorites:"
	profileKeyPrefix   = "profile:"
)

func favoritesKey(userID string) string { return favoritesKeyPrefix + userID }
func profileKey(userID string) string   { return profileKeyPrefix + userID }

// toggle applies one favorite toggle to favs and returns the new list. favs
// is not modified.
func toggle(favs []int, movieID int) ([]int, models.ToggleStatus) {
	out := make([]int, 0, len(favs)+1)
	removed := false
	for _, id := range favs {
		if id == movieID && !removed {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if removed {
		return out, models.FavoriteRemoved
	}
	return append(out, movieID), models.FavoriteAdded
}

// New opens the backend selected by cfg.Backend.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(ctx context.Context, cfg *config.StoreConfig, logger zerolog.Logger) (Store, error) {
	retries := cfg.ConflictRetries
	if retries <= 0 {
		retries = DefaultConflictRetries
	}

	switch cfg.Backend {
	case config.StoreBackendBadger, "":
		s, err := OpenBadger(cfg.BadgerPath, cfg.BadgerInMemory, retries, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("backend", "badger").
			Str("path", cfg.BadgerPath).
			Bool("in_memory", cfg.BadgerInMemory).
			Msg("Preference store opened")
		return s, nil

	case config.StoreBackendRedis:
		s, err := OpenRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Retries:  retries,
		}, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("backend", "redis").
			Str("addr", cfg.RedisAddr).
			Int("db", cfg.RedisDB).
			Msg("Preference store opened")
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
