// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package metrics defines the Prometheus collectors for Cinematch.
//
// All collectors are registered on the default registry via promauto and
// exposed by the API router at /metrics. Components record through the
// Record* helpers rather than touching the vectors directly, which keeps label
// sets consistent:
//
//	metrics.RecordFetchAttempt("movie_details", err)
//	metrics.RecordEnrichment("watch_providers", time.Since(start), defaulted)
//
// Circuit breaker collectors are shared by every breaker in the process and
// keyed by breaker name.
package metrics
