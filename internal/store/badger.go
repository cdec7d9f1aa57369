// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

const badgerBackend = "badger"

// BadgerStore implements Store on an embedded BadgerDB.
type BadgerStore struct {
	db      *badger.DB
	retries int
	logger  zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// OpenBadger opens a BadgerDB at path, or an in-memory one when inMemory is set.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenBadger(path string, inMemory bool, retries int, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	} else if path == "" {
		return nil, errors.New("badger path is required unless in-memory")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return NewBadgerStore(db, retries, logger), nil
}

// NewBadgerStore wraps an open BadgerDB. The store owns db and closes it.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBadgerStore(db *badger.DB, retries int, logger zerolog.Logger) *BadgerStore {
	if retries <= 0 {
		retries = DefaultConflictRetries
	}
	return &BadgerStore{db: db, retries: retries, logger: logger}
}

func readFavoritesTxn(txn *badger.Txn, userID string) ([]int, error) {
	item, err := txn.Get([]byte(favoritesKey(userID)))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}

	var favs []int
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &favs)
	}); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if favs == nil {
		favs = []int{}
	}
	return favs, nil
}

// Favorites returns the user's favorite movie IDs.
func (s *BadgerStore) Favorites(_ context.Context, userID string) ([]int, error) {
	var favs []int
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		favs, err = readFavoritesTxn(txn, userID)
		return err
	})
	metrics.RecordStoreOperation(badgerBackend, "favorites", err)
	if err != nil {
		return nil, err
	}
	return favs, nil
}

// ToggleFavorite adds or removes movieID in one read-write transaction.
func (s *BadgerStore) ToggleFavorite(ctx context.Context, userID string, movieID int) (result models.ToggleResult, err error) {
	defer func() {
		metrics.RecordStoreOperation(badgerBackend, "toggle_favorite", err)
	}()

	for attempt := 0; attempt <= s.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return models.ToggleResult{}, err
		}

		var status models.ToggleStatus
		err = s.db.Update(func(txn *badger.Txn) error {
			favs, err := readFavoritesTxn(txn, userID)
			if err != nil {
				return err
			}
			next, st := toggle(favs, movieID)
			data, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("marshal favorites: %w", err)
			}
			status = st
			return txn.Set([]byte(favoritesKey(userID)), data)
		})
		if err == nil {
			return models.ToggleResult{Status: status, MovieID: movieID, UserID: userID}, nil
		}
		if !errors.Is(err, badger.ErrConflict) {
			return models.ToggleResult{}, err
		}

		metrics.StoreConflictRetries.WithLabelValues(badgerBackend).Inc()
		s.logger.Debug().Str("user_id", userID).Int("attempt", attempt+1).Msg("Favorite toggle conflict, retrying")
	}

	err = ErrConflict
	return models.ToggleResult{}, err
}

// Profile returns the stored profile or ErrNotFound.
func (s *BadgerStore) Profile(_ context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(profileKey(userID)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	if errors.Is(err, ErrNotFound) {
		metrics.RecordStoreOperation(badgerBackend, "profile", nil)
		return nil, err
	}
	metrics.RecordStoreOperation(badgerBackend, "profile", err)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile creates or replaces a profile.
func (s *BadgerStore) SaveProfile(_ context.Context, p *models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(profileKey(p.UserID)), data)
	})
	metrics.RecordStoreOperation(badgerBackend, "save_profile", err)
	return err
}

// Ping reports whether the database is open.
func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger: database closed")
	}
	return nil
}

// Close closes the database. Later calls return the first result.
func (s *BadgerStore) Close() error {
	s.closeOnce.Do(func() { s.closeErr = s.db.Close() })
	return s.closeErr
}
