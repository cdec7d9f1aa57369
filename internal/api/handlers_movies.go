// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

// maxQueryLen bounds search queries forwarded to the provider.
const maxQueryLen = 200

// Search handles GET /api/v1/search/{query}.
// Results keep the provider's order, each with its watch providers attached.
//
// @Summary Search movies by title
// @Tags Movies
// @Produce json
// @Param query path string true "Search text"
// @Success 200 {object} models.APIResponse{data=[]models.EnrichedMovie}
// @Failure 400 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse "Provider failed after all retries"
// @Router /search/{query} [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query, err := pathParam(r, "query")
	if err != nil {
		respondBadParam(w, err)
		return
	}
	query = strings.TrimSpace(query)
	if query == "" || len(query) > maxQueryLen {
		respondError(w, http.StatusBadRequest, CodeValidation, "query must be between 1 and 200 characters", nil)
		return
	}

	movies, err := h.agg.Search(r.Context(), query)
	if err != nil {
		respondServiceError(w, err, "Failed to search movies")
		return
	}
	respondSuccess(w, movies, start)
}

// Movie handles GET /api/v1/movies/{movieID}.
//
// @Summary Get one movie with its watch providers
// @Tags Movies
// @Produce json
// @Param movieID path int true "Provider movie ID"
// @Success 200 {object} models.APIResponse{data=models.EnrichedMovie}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse
// @Router /movies/{movieID} [get]
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := movieRequest(w, r)
	if !ok {
		return
	}

	movie, err := h.agg.Movie(r.Context(), req.MovieID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch movie")
		return
	}
	respondSuccess(w, movie, start)
}

// MovieProviders handles GET /api/v1/movies/{movieID}/providers.
// Availability is best-effort: a failed lookup yields the empty default with
// status 200. ?region=US overrides the configured region.
//
// @Summary Get streaming availability for a movie
// @Tags Movies
// @Produce json
// @Param movieID path int true "Provider movie ID"
// @Param region query string false "ISO 3166-1 alpha-2 region"
// @Success 200 {object} models.APIResponse{data=models.WatchProviders}
// @Failure 400 {object} models.APIResponse
// @Router /movies/{movieID}/providers [get]
func (h *Handler) MovieProviders(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := movieRequest(w, r)
	if !ok {
		return
	}

	wp := h.agg.WatchProvidersIn(r.Context(), req.MovieID, strings.ToUpper(req.Region))
	respondSuccess(w, wp, start)
}

// movieRequest parses and validates the movie path parameter and region
// query. It writes the 400 itself and reports false on failure.
func movieRequest(w http.ResponseWriter, r *http.Request) (models.MovieRequest, bool) {
	id, err := pathInt(r, "movieID")
	if err != nil {
		respondBadParam(w, err)
		return models.MovieRequest{}, false
	}

	req := models.MovieRequest{MovieID: id, Region: r.URL.Query().Get("region")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return models.MovieRequest{}, false
	}
	return req, true
}
