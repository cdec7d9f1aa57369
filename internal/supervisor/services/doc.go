// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package services adapts Cinematch components to suture.Service.
//
// Each wrapper's Serve blocks until its context is canceled and implements
// fmt.Stringer so suture can name it in log events.
package services
