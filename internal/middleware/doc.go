// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP middleware for request tracking, access
logging and Prometheus instrumentation.

Key Components:

  - RequestID: assigns X-Request-ID and seeds the logging context
  - AccessLog: one zerolog line per request
  - PrometheusMetrics: request totals, latency and in-flight gauge

All three use the http.HandlerFunc middleware shape. The api package adapts
them to chi with a one-line wrapper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.AccessLog(logger)))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Metric labels use the chi route pattern, so /api/v1/movies/603 and
/api/v1/movies/604 share one series. Requests that match no route are labelled
"unmatched".
*/
package middleware
