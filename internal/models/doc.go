// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package models defines the data structures shared across Cinematch.

Catalog side (recommender input and output):

  - Item, Preference: rows of the catalog and preference sources
  - Candidate: one recommendation with its reason and originating strategy
  - HybridRecommendation: a Candidate with optional streaming availability

Provider side (aggregation pipeline):

  - Movie: title metadata from the metadata provider
  - WatchProviders, StreamingProvider: regional streaming availability
  - EnrichedMovie: a Movie with availability attached

Store side: Profile, ToggleResult and the validated request bodies.

APIResponse, Metadata and APIError form the JSON envelope for every endpoint.
*/
package models
