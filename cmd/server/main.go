// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package main is the entry point for the Cinematch server.
//
// Cinematch answers "what should I watch next, and where can I stream it?".
// It combines a hybrid recommender (collaborative filtering over user
// preferences plus genre-based content matching) with movie metadata and
// watch-provider availability from TMDB.
//
// # Startup
//
//  1. Configuration: defaults, optional config.yaml, environment (koanf v2)
//  2. Logging: zerolog, bridged to slog for the supervisor
//  3. Store: favorites and profiles in BadgerDB or Redis
//  4. Provider: TMDB client with retry, circuit breaker and response cache
//  5. Recommender: optional CEL filter, snapshot loaded from CSV via DuckDB
//  6. HTTP: chi router under a suture supervisor tree
//
// # Example
//
//	export TMDB_API_KEY=your-key
//	export ITEMS_PATH=data/items.csv
//	export PREFERENCES_PATH=data/users.csv
//	./cinematch
//
// SIGINT and SIGTERM stop the tree: the HTTP server drains in-flight
// requests for up to server.shutdown_timeout, then the store is closed.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("store_backend", cfg.Store.Backend).
		Str("region", cfg.Provider.Region).
		Str("language", cfg.Provider.Language).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Dur("reload_interval", cfg.Recommend.ReloadInterval).
		Msg("Starting Cinematch")

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Cinematch stopped")
}

// run blocks until SIGINT/SIGTERM or until the supervisor tree gives up.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := buildComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer comps.close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}
	addServices(tree, cfg, comps)

	logging.Info().Str("addr", comps.server.Addr).Msg("Supervisor tree starting")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}
	return nil
}

func addServices(tree *supervisor.SupervisorTree, cfg *config.Config, comps *components) {
	tree.AddDataService(services.NewCatalogService(comps.reloader, cfg.Recommend.ReloadInterval, logging.WithComponent("supervisor")))
	if comps.cache != nil {
		tree.AddDataService(services.NewCacheJanitorService(comps.cache, cfg.Cache.TTL, logging.WithComponent("supervisor")))
	}
	tree.AddAPIService(services.NewHTTPServerService(comps.server, cfg.Server.ShutdownTimeout, logging.WithComponent("supervisor")))
}
