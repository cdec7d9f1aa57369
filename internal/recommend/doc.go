// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend implements the hybrid movie recommender.
//
// # Model
//
// A Snapshot is built once from the catalog (items) and the preference log
// (user, item, liked). It holds the user-item matrix, the user-user cosine
// similarity matrix and the catalog, all derived together, and it is never
// mutated afterwards. Every recommendation method is a read-only method on a
// Snapshot, so any number of goroutines may share one.
//
// Recommender holds the Snapshot being served behind an atomic pointer.
// A reload builds a fresh Snapshot and swaps it in with Load; requests in
// flight keep using the snapshot they started with.
//
// # Strategies
//
//   - RecommendBySimilarity (collaborative): items liked by users with
//     positive similarity, nearest neighbours first
//   - RecommendByContent: unliked catalog items sharing a genre with the
//     user's liked items, genres in catalog discovery order
//   - GetRecommendations (hybrid): collaborative then content, deduplicated by
//     item ID (first occurrence wins), liked items removed, truncated to n
//
// # Usage
//
//	snap := recommend.NewSnapshot(items, prefs)
//	rec := recommend.New(logger)
//	rec.Load(snap)
//	cands := rec.GetRecommendations(ctx, userID, 5)
//
// Unknown users and empty data produce empty slices, never errors.
package recommend
