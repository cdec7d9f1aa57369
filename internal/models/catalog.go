// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// Item is an immutable catalog entry.
type Item struct {
	ID    int    `json:"item_id"`
	Title string `json:"title"`
	Genre string `json:"genre"`
}

// Preference is one user/item like signal. Liked is 0 or 1.
type Preference struct {
	UserID int `json:"user_id"`
	ItemID int `json:"item_id"`
	Liked  int `json:"liked"`
}

// CandidateSource identifies which sub-recommender produced a candidate.
type CandidateSource string

const (
	SourceCollaborative CandidateSource = "collaborative"
	SourceContent       CandidateSource = "content"
)

// Candidate is a recommended catalog item with a human-readable reason.
//
// Score is the neighbour similarity for collaborative candidates and 0 for
// content candidates.
type Candidate struct {
	ItemID int             `json:"item_id"`
	Title  string          `json:"title"`
	Genre  string          `json:"genre"`
	Reason string          `json:"reason"`
	Score  float64         `json:"score"`
	Source CandidateSource `json:"source"`
}

// HybridRecommendation is a Candidate optionally enriched with streaming
// availability, where the catalog item ID doubles as the provider movie ID.
type HybridRecommendation struct {
	Candidate
	WatchProviders *WatchProviders `json:"watch_providers,omitempty"`
}

// SnapshotStats summarizes the recommender snapshot currently being served.
type SnapshotStats struct {
	Users       int   `json:"users"`
	Items       int   `json:"items"`
	Preferences int   `json:"preferences"`
	BuiltAtUnix int64 `json:"built_at"`
}
