// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// ReleaseDateUnknown is reported when the provider has no release date.
const ReleaseDateUnknown = "N/A"

// Movie is the provider-side view of a title.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterURL   *string `json:"poster_url"`
	ReleaseDate string  `json:"release_date"`
}

// StreamingProvider is one streaming service offering a title.
type StreamingProvider struct {
	ProviderID      int    `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path,omitempty"`
	DisplayPriority int    `json:"display_priority"`
}

// WatchProviders lists where a title can be streamed in one region.
// Flatrate and Free are never nil so they always serialize as arrays.
type WatchProviders struct {
	Link     *string             `json:"link"`
	Flatrate []StreamingProvider `json:"flatrate"`
	Free     []StreamingProvider `json:"free"`
}

// DefaultWatchProviders is the neutral value used when availability is
// unknown: no link and empty lists.
func DefaultWatchProviders() WatchProviders {
	return WatchProviders{
		Link:     nil,
		Flatrate: []StreamingProvider{},
		Free:     []StreamingProvider{},
	}
}

// Normalize replaces nil lists with empty ones.
func (w WatchProviders) Normalize() WatchProviders {
	if w.Flatrate == nil {
		w.Flatrate = []StreamingProvider{}
	}
	if w.Free == nil {
		w.Free = []StreamingProvider{}
	}
	return w
}

// EnrichedMovie is a Movie with its watch providers attached.
type EnrichedMovie struct {
	Movie
	WatchProviders WatchProviders `json:"watch_providers"`
}
