// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package catalog loads the recommender's input data from CSV files through an
in-memory DuckDB connection.

Two files are read:

	items.csv   item_id,title,genre
	users.csv   user_id,item_id,liked

Rows are returned in file order, which the content-based strategy relies on
for genre discovery and tie-breaking. DuckDB's CSV reader handles quoting,
header detection and type coercion.

A missing file is reported as ErrSourceMissing. Callers treat that as "no
data": the recommender keeps serving an empty snapshot and the process keeps
running.

	src, err := catalog.Open(cfg.Recommend.ItemsPath, cfg.Recommend.PreferencesPath, logger)
	if err != nil {
	    return err
	}
	defer src.Close()

	snap, err := src.Load(ctx)
	if errors.Is(err, catalog.ErrSourceMissing) {
	    snap = recommend.EmptySnapshot()
	}
*/
package catalog
