// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package fetch performs a single logical external lookup with bounded retry.
//
// A Fetcher runs an operation up to MaxAttempts times, sleeping a constant
// Delay between failed attempts (no sleep follows the final attempt). The
// caller receives exactly one of: the operation's value, or a *FetchExhausted
// describing the attempts made and the last failure.
//
//	f := fetch.New(fetch.WithMaxAttempts(5), fetch.WithDelay(5*time.Second))
//	movie, err := fetch.Fetch(ctx, f, "movie_details", func(ctx context.Context) (models.Movie, error) {
//	    return client.getMovie(ctx, id)
//	})
//	var exhausted *fetch.FetchExhausted
//	if errors.As(err, &exhausted) { ... }
//
// Every failure kind (transport error, non-2xx status, decode error) is
// retried. Cancelling ctx interrupts the wait between attempts; the result is
// still a *FetchExhausted whose LastError matches both the last operation
// error and ctx.Err().
package fetch
