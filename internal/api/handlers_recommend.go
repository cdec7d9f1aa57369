// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
)

// Recommend handles GET /api/v1/recommend/{userID}.
// Users without favorites get the provider's popular list; others get the
// union of titles related to their favorites.
//
// @Summary Provider-side recommendations from favorites
// @Tags Recommendations
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} models.APIResponse{data=[]models.EnrichedMovie}
// @Failure 400 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse "Popular list unavailable"
// @Router /recommend/{userID} [get]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userRequest(w, r)
	if !ok {
		return
	}

	movies, err := h.agg.Recommend(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to build recommendations")
		return
	}
	respondSuccess(w, movies, start)
}

// Recommendations handles GET /api/v1/recommendations/{userID}?n=5&providers=false.
// It serves the hybrid catalog recommender. n defaults to the configured
// count and may not exceed the configured maximum.
//
// @Summary Hybrid collaborative and content recommendations
// @Tags Recommendations
// @Produce json
// @Param userID path int true "Catalog user ID"
// @Param n query int false "Number of recommendations"
// @Param providers query bool false "Attach watch providers"
// @Success 200 {object} models.APIResponse{data=[]models.HybridRecommendation}
// @Failure 400 {object} models.APIResponse
// @Router /recommendations/{userID} [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := pathInt(r, "userID")
	if err != nil {
		respondBadParam(w, err)
		return
	}

	def, maxN := h.recommendCounts()
	n, err := queryInt(r, "n", def)
	if err != nil {
		respondBadParam(w, err)
		return
	}
	withProviders, err := queryBool(r, "providers", false)
	if err != nil {
		respondBadParam(w, err)
		return
	}

	req := models.RecommendationsRequest{UserID: userID, N: n, Providers: withProviders}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}
	if req.N > maxN {
		respondError(w, http.StatusBadRequest, CodeValidation, fmt.Sprintf("n must be at most %d", maxN), nil)
		return
	}

	recs := h.agg.Hybrid(r.Context(), req.UserID, req.N, req.Providers)
	respondSuccess(w, recs, start)
}

// ReloadCatalog handles POST /api/v1/catalog/reload.
// A missing source is not an error: the recommender then serves an empty
// snapshot and the returned stats show zero items.
//
// @Summary Reload the recommendation catalog
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.SnapshotStats}
// @Failure 500 {object} models.APIResponse "Reload failed, previous snapshot kept"
// @Failure 503 {object} models.APIResponse "Reload not configured"
// @Router /catalog/reload [post]
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.reloader == nil {
		respondError(w, http.StatusServiceUnavailable, CodeNotReady, "Catalog reload is not available", nil)
		return
	}

	stats, err := h.reloader.Reload(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Catalog reload failed, previous snapshot kept", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("users", stats.Users).
		Int("items", stats.Items).
		Msg("Catalog reloaded on request")
	respondSuccess(w, stats, start)
}
