// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// Profile is the public part of a user record.
type Profile struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToggleStatus reports the effect of a favorite toggle.
type ToggleStatus string

const (
	FavoriteAdded   ToggleStatus = "added"
	FavoriteRemoved ToggleStatus = "removed"
)

// ToggleResult is returned by a favorite toggle.
type ToggleResult struct {
	Status  ToggleStatus `json:"status"`
	MovieID int          `json:"movie_id"`
	UserID  string       `json:"user_id"`
}
