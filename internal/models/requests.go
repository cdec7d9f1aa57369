// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// FavoriteRequest is the body of POST /api/v1/favorites.
type FavoriteRequest struct {
	UserID  string `json:"user_id" validate:"required,notblank,max=128"`
	MovieID int    `json:"movie_id" validate:"required,min=1"`
}

// ProfileRequest is the body of PUT /api/v1/profile/{userID}.
type ProfileRequest struct {
	Username string `json:"username" validate:"required,notblank,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// UserRequest carries a user ID taken from the URL path.
type UserRequest struct {
	UserID string `json:"user_id" validate:"required,notblank,max=128"`
}

// MovieRequest carries a provider movie ID taken from the URL path, plus an
// optional region override for availability lookups.
type MovieRequest struct {
	MovieID int    `json:"movie_id" validate:"min=1"`
	Region  string `json:"region" validate:"omitempty,region"`
}

// RecommendationsRequest holds the parameters of
// GET /api/v1/recommendations/{userID}.
type RecommendationsRequest struct {
	UserID    int  `json:"user_id" validate:"min=0"`
	N         int  `json:"n" validate:"min=1"`
	Providers bool `json:"providers"`
}
