// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/cinematch/internal/models"
)

// movieResult is a movie as returned by detail and list endpoints.
type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate *string `json:"release_date"`
}

type pagedResults struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type regionProviders struct {
	Link     *string                    `json:"link"`
	Flatrate []models.StreamingProvider `json:"flatrate"`
	Free     []models.StreamingProvider `json:"free"`
}

type providersResponse struct {
	ID      int                        `json:"id"`
	Results map[string]regionProviders `json:"results"`
}

func (c *Client) localized() url.Values {
	params := url.Values{}
	if c.language != "" {
		params.Set("language", c.language)
	}
	return params
}

// toMovie converts r. A missing release date becomes missingDate: list
// results report models.ReleaseDateUnknown, details pass the provider value
// through.
func (c *Client) toMovie(r *movieResult, missingDate string) models.Movie {
	m := models.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Overview:    r.Overview,
		ReleaseDate: missingDate,
	}
	if r.PosterPath != nil && *r.PosterPath != "" {
		poster := c.imageBaseURL + *r.PosterPath
		m.PosterURL = &poster
	}
	if r.ReleaseDate != nil && *r.ReleaseDate != "" {
		m.ReleaseDate = *r.ReleaseDate
	}
	return m
}

func (c *Client) toMovies(results []movieResult) []models.Movie {
	out := make([]models.Movie, 0, len(results))
	for i := range results {
		out = append(out, c.toMovie(&results[i], models.ReleaseDateUnknown))
	}
	return out
}

// Movie returns the details of one movie. Unlike list results, a missing
// release date stays empty.
func (c *Client) Movie(ctx context.Context, id int) (models.Movie, error) {
	var r movieResult
	if err := c.get(ctx, "movie", fmt.Sprintf("/movie/%d", id), c.localized(), &r); err != nil {
		return models.Movie{}, fmt.Errorf("movie %d: %w", id, err)
	}
	return c.toMovie(&r, ""), nil
}

// Search returns the first page of movies matching query.
func (c *Client) Search(ctx context.Context, query string) ([]models.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Movie{}, nil
	}

	params := c.localized()
	params.Set("query", query)

	var page pagedResults
	if err := c.get(ctx, "search", "/search/movie", params, &page); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return c.toMovies(page.Results), nil
}

// Popular returns the first page of currently popular movies.
func (c *Client) Popular(ctx context.Context) ([]models.Movie, error) {
	var page pagedResults
	if err := c.get(ctx, "popular", "/movie/popular", c.localized(), &page); err != nil {
		return nil, fmt.Errorf("popular movies: %w", err)
	}
	return c.toMovies(page.Results), nil
}

// Related returns the provider's recommendations for a movie.
func (c *Client) Related(ctx context.Context, id int) ([]models.Movie, error) {
	var page pagedResults
	if err := c.get(ctx, "recommendations", fmt.Sprintf("/movie/%d/recommendations", id), c.localized(), &page); err != nil {
		return nil, fmt.Errorf("recommendations for movie %d: %w", id, err)
	}
	return c.toMovies(page.Results), nil
}

// WatchProviders returns streaming availability for a movie in region. A
// region absent from the response yields the default (no link, empty lists).
func (c *Client) WatchProviders(ctx context.Context, id int, region string) (models.WatchProviders, error) {
	var resp providersResponse
	if err := c.get(ctx, "watch_providers", fmt.Sprintf("/movie/%d/watch/providers", id), nil, &resp); err != nil {
		return models.DefaultWatchProviders(), fmt.Errorf("watch providers for movie %d: %w", id, err)
	}

	rp, ok := resp.Results[strings.ToUpper(region)]
	if !ok {
		return models.DefaultWatchProviders(), nil
	}
	return models.WatchProviders{
		Link:     rp.Link,
		Flatrate: rp.Flatrate,
		Free:     rp.Free,
	}.Normalize(), nil
}
