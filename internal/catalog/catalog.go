// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// ErrSourceMissing is returned when a CSV source file does not exist.
var ErrSourceMissing = errors.New("catalog source missing")

// Source reads items and preferences from CSV files.
type Source struct {
	itemsPath string
	prefsPath string
	conn      *sql.DB
	logger    zerolog.Logger
}

// Open creates a Source backed by an in-memory DuckDB connection. The files
// are not read until Load is called, so they may appear later.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(itemsPath, prefsPath string, logger zerolog.Logger) (*Source, error) {
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// A single connection keeps the in-memory database consistent.
	conn.SetMaxOpenConns(1)

	return &Source{
		itemsPath: itemsPath,
		prefsPath: prefsPath,
		conn:      conn,
		logger:    logger,
	}, nil
}

// Close releases the DuckDB connection.
func (s *Source) Close() error {
	return s.conn.Close()
}

// Paths returns the items and preferences file paths.
func (s *Source) Paths() (items, preferences string) {
	return s.itemsPath, s.prefsPath
}

// Load reads both files and builds a recommendation snapshot.
func (s *Source) Load(ctx context.Context) (*recommend.Snapshot, error) {
	items, err := s.LoadItems(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.LoadPreferences(ctx)
	if err != nil {
		return nil, err
	}

	snap := recommend.NewSnapshot(items, prefs)
	s.logger.Info().
		Int("items", len(items)).
		Int("preferences", len(prefs)).
		Msg("Catalog loaded")
	return snap, nil
}

// LoadItems returns the catalog rows in file order.
func (s *Source) LoadItems(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT CAST(item_id AS BIGINT), CAST(title AS VARCHAR), CAST(genre AS VARCHAR)
		FROM ` + csvSource(s.itemsPath)

	var items []models.Item
	err := s.query(ctx, "items", s.itemsPath, query, func(rows *sql.Rows) error {
		var it models.Item
		var title, genre sql.NullString
		if err := rows.Scan(&it.ID, &title, &genre); err != nil {
			return err
		}
		it.Title = title.String
		it.Genre = genre.String
		items = append(items, it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// LoadPreferences returns the interaction rows in file order.
func (s *Source) LoadPreferences(ctx context.Context) ([]models.Preference, error) {
	query := `
		SELECT CAST(user_id AS BIGINT), CAST(item_id AS BIGINT), CAST(liked AS BIGINT)
		FROM ` + csvSource(s.prefsPath)

	var prefs []models.Preference
	err := s.query(ctx, "preferences", s.prefsPath, query, func(rows *sql.Rows) error {
		var p models.Preference
		if err := rows.Scan(&p.UserID, &p.ItemID, &p.Liked); err != nil {
			return err
		}
		prefs = append(prefs, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *Source) query(ctx context.Context, table, path, query string, scan func(*sql.Rows) error) (err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return fmt.Errorf("stat %s: %w", path, statErr)
	}

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("read_csv", table, time.Since(start), err)
	}()

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err = scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", path, err)
	}
	return nil
}

// csvSource renders a read_csv_auto call for path. Columns are read as text
// and cast by the caller so the result types do not depend on sniffing.
func csvSource(path string) string {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	return "read_csv_auto(" + quoted + ", header = true, all_varchar = true)"
}
