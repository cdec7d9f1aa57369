// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package testinfra provides container-backed infrastructure for integration tests.
//
// It uses testcontainers-go to start real services, so backends are tested
// against the same server they run against in production. Everything here is
// behind the integration build tag:
//
//	go test -tags integration ./internal/store/...
//
// # Redis Container
//
//	func TestRedisStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//
//	    rc, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, rc)
//
//	    client := redis.NewClient(&redis.Options{Addr: rc.Addr})
//	    // ...
//	}
//
// Tests are skipped when Docker is unavailable. The first run pulls the image.
package testinfra
