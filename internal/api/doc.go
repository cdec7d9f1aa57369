// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the HTTP REST API for Cinematch.

Routes are served by a chi router. Every response uses the models.APIResponse
envelope: status "success" with data, or status "error" with a machine-readable
code.

Routes:

	GET  /                                   welcome message
	GET  /metrics                            Prometheus metrics
	GET  /api/v1/health/live                 liveness
	GET  /api/v1/health/ready                store ping and snapshot stats
	GET  /api/v1/search/{query}              title search with availability
	GET  /api/v1/movies/{movieID}            movie details (404 vs 502)
	GET  /api/v1/movies/{movieID}/providers  availability, ?region= override
	POST /api/v1/favorites                   toggle {user_id, movie_id}
	GET  /api/v1/favorites/{userID}          favorite movies
	GET  /api/v1/profile/{userID}            profile
	PUT  /api/v1/profile/{userID}            create or replace profile
	GET  /api/v1/recommend/{userID}          provider-side recommendations
	GET  /api/v1/recommendations/{userID}    hybrid recommendations, ?n=&providers=
	POST /api/v1/catalog/reload              rebuild the recommender snapshot

Error codes:

  - VALIDATION_ERROR (400): malformed path, query or body
  - NOT_FOUND (404): unknown movie, profile or route
  - RATE_LIMITED (429): per-IP budget exhausted
  - UPSTREAM_ERROR (502): the metadata provider failed after every retry
  - STORE_ERROR (500): the favorites/profile store failed
  - SERVICE_UNAVAILABLE (503): a dependency is not configured or not ready

Middleware, outermost first: request ID, real IP, access log, panic recovery,
CORS, Prometheus, gzip, security headers. Everything under /api/v1 except the
health probes is rate limited per client IP.

Usage:

	h := api.NewHandler(aggregator, store, reloader, recommender, cfg)
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(h, mw, logging.WithComponent("api"))
	srv := &http.Server{Addr: ":8000", Handler: router.SetupChi()}
*/
package api
