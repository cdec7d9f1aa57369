// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package store persists per-user favorites and profiles.

Two backends implement Store:

  - BadgerStore (default): embedded github.com/dgraph-io/badger/v4, on disk or
    in memory. Toggles run in a read-write transaction and are retried on
    badger.ErrConflict.
  - RedisStore: github.com/redis/go-redis/v9. Toggles use WATCH plus a
    MULTI/EXEC pipeline and are retried on redis.TxFailedErr.

Both use the same key layout with JSON values:

	favorites:<user_id>   [603, 27205]
	profile:<user_id>     {"user_id":"u1","username":"neo","email":"neo@example.com"}

Toggle semantics: a movie already in the list is removed (the rest keep their
order); otherwise it is appended. Concurrent toggles for the same user are
serialized by the backend's optimistic concurrency control, so no update is
lost. When the retry budget runs out ErrConflict is returned.
*/
package store
