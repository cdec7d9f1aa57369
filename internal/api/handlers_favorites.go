// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
)

// ToggleFavorite handles POST /api/v1/favorites.
// A movie already in the list is removed, otherwise it is appended.
//
// @Summary Add or remove a favorite
// @Tags Favorites
// @Accept json
// @Produce json
// @Param body body models.FavoriteRequest true "User and movie"
// @Success 200 {object} models.APIResponse{data=models.ToggleResult}
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /favorites [post]
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.FavoriteRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondBadParam(w, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	result, err := h.store.ToggleFavorite(r.Context(), req.UserID, req.MovieID)
	if err != nil {
		respondStoreError(w, err, "Failed to update favorites")
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("user_id", sanitizeLogValue(req.UserID)).
		Int("movie_id", req.MovieID).
		Str("status", string(result.Status)).
		Msg("Favorite toggled")

	respondSuccess(w, result, start)
}

// Favorites handles GET /api/v1/favorites/{userID}.
// Favorites whose details cannot be fetched are omitted.
//
// @Summary List a user's favorite movies
// @Tags Favorites
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} models.APIResponse{data=[]models.EnrichedMovie}
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /favorites/{userID} [get]
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userRequest(w, r)
	if !ok {
		return
	}

	movies, err := h.agg.Favorites(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to load favorites")
		return
	}
	respondSuccess(w, movies, start)
}

// Profile handles GET /api/v1/profile/{userID}.
//
// @Summary Get a user profile
// @Tags Profile
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} models.APIResponse{data=models.Profile}
// @Failure 404 {object} models.APIResponse
// @Router /profile/{userID} [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userRequest(w, r)
	if !ok {
		return
	}

	profile, err := h.store.Profile(r.Context(), userID)
	if err != nil {
		respondStoreError(w, err, "Failed to load profile")
		return
	}
	respondSuccess(w, profile, start)
}

// SaveProfile handles PUT /api/v1/profile/{userID}.
//
// @Summary Create or replace a user profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param body body models.ProfileRequest true "Profile fields"
// @Success 200 {object} models.APIResponse{data=models.Profile}
// @Failure 400 {object} models.APIResponse
// @Router /profile/{userID} [put]
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userRequest(w, r)
	if !ok {
		return
	}

	var req models.ProfileRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondBadParam(w, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	profile := &models.Profile{UserID: userID, Username: req.Username, Email: req.Email}
	if err := h.store.SaveProfile(r.Context(), profile); err != nil {
		respondStoreError(w, err, "Failed to save profile")
		return
	}
	respondSuccess(w, profile, start)
}

// userRequest reads and validates the userID path parameter.
func userRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := pathParam(r, "userID")
	if err != nil {
		respondBadParam(w, err)
		return "", false
	}
	req := models.UserRequest{UserID: userID}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return "", false
	}
	return req.UserID, true
}
