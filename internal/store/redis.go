// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

const redisBackend = "redis"

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Retries  int
}

// RedisStore implements Store on Redis.
type RedisStore struct {
	client  *redis.Client
	retries int
	logger  zerolog.Logger
}

// OpenRedis connects to Redis and verifies the connection with PING.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenRedis(ctx context.Context, opts RedisOptions, logger zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	return NewRedisStore(client, opts.Retries, logger), nil
}

// NewRedisStore wraps a connected client. The store owns client and closes it.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRedisStore(client *redis.Client, retries int, logger zerolog.Logger) *RedisStore {
	if retries <= 0 {
		retries = DefaultConflictRetries
	}
	return &RedisStore{client: client, retries: retries, logger: logger}
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readFavorites(ctx context.Context, r stringGetter, userID string) ([]int, error) {
	data, err := r.Get(ctx, favoritesKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}

	var favs []int
	if err := json.Unmarshal(data, &favs); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if favs == nil {
		favs = []int{}
	}
	return favs, nil
}

// Favorites returns the user's favorite movie IDs.
func (s *RedisStore) Favorites(ctx context.Context, userID string) ([]int, error) {
	favs, err := readFavorites(ctx, s.client, userID)
	metrics.RecordStoreOperation(redisBackend, "favorites", err)
	return favs, err
}

// ToggleFavorite adds or removes movieID under WATCH on the favorites key.
func (s *RedisStore) ToggleFavorite(ctx context.Context, userID string, movieID int) (result models.ToggleResult, err error) {
	defer func() {
		metrics.RecordStoreOperation(redisBackend, "toggle_favorite", err)
	}()

	key := favoritesKey(userID)
	var status models.ToggleStatus

	txf := func(tx *redis.Tx) error {
		favs, err := readFavorites(ctx, tx, userID)
		if err != nil {
			return err
		}
		next, st := toggle(favs, movieID)
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal favorites: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err == nil {
			status = st
		}
		return err
	}

	for attempt := 0; attempt <= s.retries; attempt++ {
		err = s.client.Watch(ctx, txf, key)
		if err == nil {
			return models.ToggleResult{Status: status, MovieID: movieID, UserID: userID}, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return models.ToggleResult{}, err
		}

		metrics.StoreConflictRetries.WithLabelValues(redisBackend).Inc()
		s.logger.Debug().Str("user_id", userID).Int("attempt", attempt+1).Msg("Favorite toggle conflict, retrying")
	}

	err = ErrConflict
	return models.ToggleResult{}, err
}

// Profile returns the stored profile or ErrNotFound.
func (s *RedisStore) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	data, err := s.client.Get(ctx, profileKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordStoreOperation(redisBackend, "profile", nil)
		return nil, ErrNotFound
	}
	metrics.RecordStoreOperation(redisBackend, "profile", err)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p models.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// SaveProfile creates or replaces a profile.
func (s *RedisStore) SaveProfile(ctx context.Context, p *models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	err = s.client.Set(ctx, profileKey(p.UserID), data, 0).Err()
	metrics.RecordStoreOperation(redisBackend, "save_profile", err)
	return err
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
