// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	logger        zerolog.Logger
}

// NewRouter creates a Router. A nil mw uses the default middleware config.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRouter(handler *Handler, mw *ChiMiddleware, logger zerolog.Logger) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw, logger: logger}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chiMiddleware(middleware.RequestID))                // X-Request-ID + logging context
	r.Use(chimiddleware.RealIP)                               // X-Forwarded-For / X-Real-IP
	r.Use(chiMiddleware(middleware.AccessLog(router.logger))) // one line per request
	r.Use(chimiddleware.Recoverer)                            // panics become 500s
	r.Use(router.chiMiddleware.CORS())                        // must be global for OPTIONS preflight
	r.Use(chiMiddleware(middleware.PrometheusMetrics))        // labelled by route pattern
	r.Use(chimiddleware.Compress(5, "application/json"))      // gzip JSON bodies
	r.Use(APISecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/", router.handler.Welcome)
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Health Endpoints
	// ========================
	// Not rate limited: probes run every few seconds.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/search/{query}", router.handler.Search)

		r.Route("/movies/{movieID}", func(r chi.Router) {
			r.Get("/", router.handler.Movie)
			r.Get("/providers", router.handler.MovieProviders)
		})

		r.Post("/favorites", router.handler.ToggleFavorite)
		r.Get("/favorites/{userID}", router.handler.Favorites)

		r.Get("/profile/{userID}", router.handler.Profile)
		r.Put("/profile/{userID}", router.handler.SaveProfile)

		r.Get("/recommend/{userID}", router.handler.Recommend)
		r.Get("/recommendations/{userID}", router.handler.Recommendations)

		r.With(router.chiMiddleware.RateLimitCustom(RateLimitReload)).
			Post("/catalog/reload", router.handler.ReloadCatalog)
	})

	return r
}
