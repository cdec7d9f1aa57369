// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package logging provides the process-wide zerolog logger for Cinematch.
//
// Call Init once from main with the values from config.LoggingConfig:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logging.Info().Str("addr", addr).Msg("Server starting")
//
// Request-scoped code should log through Ctx so that the request and
// correlation IDs injected by middleware.RequestIDWithLogging appear on every line:
//
//	logging.Ctx(ctx).Warn().Err(err).Int("movie_id", id).Msg("Provider lookup defaulted")
//
// SlogHandler bridges zerolog into log/slog for the supervisor tree, which
// logs through sutureslog.
//
// Always terminate an event chain with Msg or Send; an unterminated chain is
// never written.
package logging
