// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by all handlers. It reports fields by
// their JSON name and translates failures into messages that fit the API's
// VALIDATION_ERROR payload.
//
// # Usage
//
//	var req models.FavoriteRequest
//	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	    // handle decode error
//	}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Custom Tags
//
//   - region: an ISO 3166-1 alpha-2 country code, either case
//   - notblank: a string with at least one non-space character
//
// Built-in tags (required, email, min, max, oneof, ...) work as documented
// upstream.
//
// # Thread Safety
//
// GetValidator initializes the instance once; it and ValidateStruct are safe
// for concurrent use. Struct reflection data is cached after the first call
// for each type.
package validation
