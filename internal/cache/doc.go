// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package cache provides a generic TTL-bounded LRU cache.
//
// The metadata provider client uses it to memoize successful lookups (movie
// details, search pages, watch providers) so that a burst of recommendation
// requests for overlapping titles does not multiply outbound traffic.
// Failures are never cached; a failed lookup is retried on the next request.
//
//	c := cache.NewLRU[models.WatchProviders](2048, 10*time.Minute)
//	c.Set("providers:603:FR", wp)
//	if wp, ok := c.Get("providers:603:FR"); ok { ... }
//
// A CacheJanitorService in the supervisor tree calls CleanupExpired
// periodically so that expired entries do not linger until evicted.
package cache
