// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package tmdb is the client for The Movie Database (TMDB) v3 REST API, the
metadata and streaming-availability provider behind search, favorites and
related-title recommendations.

Endpoints used:

	GET /movie/{id}                   Movie
	GET /search/movie?query=...       Search
	GET /movie/popular                Popular
	GET /movie/{id}/recommendations   Related
	GET /movie/{id}/watch/providers   WatchProviders

Request pipeline:

Every call goes through a fetch.Fetcher, which retries failed attempts with a
fixed delay and reports *fetch.FetchExhausted when all attempts fail. Each
attempt then:

 1. waits on a token-bucket rate limiter (golang.org/x/time/rate)
 2. runs inside a circuit breaker (sony/gobreaker)
 3. performs the HTTP GET with the configured client timeout

Non-2xx responses become *StatusError. Because FetchExhausted unwraps to the
last attempt's error, callers can detect a missing movie with:

	var se *tmdb.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound { ... }

Client errors other than 429 do not count against the circuit breaker, so a
burst of unknown IDs cannot open it.

Caching:

Successful response bodies are cached in a TTL LRU keyed by path and query
(without the API key). Failures are never cached.

Thread Safety:

A Client is safe for concurrent use.
*/
package tmdb
