// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/cinematch/internal/aggregate"
	"github.com/tomtom215/cinematch/internal/store"
)

// Error codes carried in APIError.Code.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeUpstream    = "UPSTREAM_ERROR"
	CodeStore       = "STORE_ERROR"
	CodeInternal    = "INTERNAL_ERROR"
	CodeNotReady    = "SERVICE_UNAVAILABLE"
	CodeRateLimited = "RATE_LIMITED"
)

var errEmptyBody = errors.New("request body is empty")

// statusClientClosedRequest is logged when the client went away; the
// response is never seen.
const statusClientClosedRequest = 499

// respondServiceError maps an error from the aggregate or store layers to a
// status and code. message is the client-facing text for 5xx responses.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, aggregate.ErrNotFound), errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, CodeNotFound, "Resource not found", nil)
	case errors.Is(err, context.Canceled):
		respondError(w, statusClientClosedRequest, CodeInternal, "Request canceled", err)
	case errors.Is(err, aggregate.ErrUpstream):
		respondError(w, http.StatusBadGateway, CodeUpstream, message, err)
	case errors.Is(err, aggregate.ErrStore):
		respondError(w, http.StatusInternalServerError, CodeStore, message, err)
	default:
		respondError(w, http.StatusInternalServerError, CodeInternal, message, err)
	}
}

// respondStoreError maps a store error: a missing record is a 404 and
// anything else a STORE_ERROR.
func respondStoreError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "Resource not found", nil)
		return
	}
	respondError(w, http.StatusInternalServerError, CodeStore, message, err)
}
