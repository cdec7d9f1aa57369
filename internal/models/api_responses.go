// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"time"
)

// APIResponse is the envelope for every JSON response from the HTTP API.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
//	{
//	  "status": "success",
//	  "data": [{"id": 603, "title": "Matrix", "watch_providers": {...}}],
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 812}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing. QueryTimeMS covers the whole handler,
// including provider round trips.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a machine-readable error body.
//
// Codes used by the API:
//   - VALIDATION_ERROR: malformed path, query or body
//   - NOT_FOUND: unknown movie or profile
//   - UPSTREAM_ERROR: the metadata provider failed after all retries
//   - STORE_ERROR: the favorites/profile store failed
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
