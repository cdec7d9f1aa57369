// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

// readyPingTimeout bounds the store ping in the readiness probe.
const readyPingTimeout = 2 * time.Second

// Welcome handles GET /.
//
// @Summary Welcome message
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router / [get]
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]string{
		"message": "Welcome to the Cinematch movie recommendation API",
	}, time.Now())
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
//
// @Summary Kubernetes liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// The service is ready when the favorites store answers a ping. An empty
// recommender snapshot does not make it unready: recommendations are then
// empty, not failing.
//
// @Summary Kubernetes readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
	defer cancel()

	storeConnected := h.store != nil && h.store.Ping(ctx) == nil

	var snapshot models.SnapshotStats
	if h.snapshots != nil {
		snapshot = h.snapshots.Stats()
	}

	statusCode := http.StatusOK
	status := "ready"
	if !storeConnected {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"store_connected": storeConnected,
			"snapshot":        snapshot,
			"ready_to_serve":  storeConnected,
			"uptime":          time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
