// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/cinematch/internal/aggregate"
	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/fetch"
	"github.com/tomtom215/cinematch/internal/filter"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/store"
	"github.com/tomtom215/cinematch/internal/tmdb"
)

// components holds everything main supervises or closes.
type components struct {
	store    store.Store
	cache    *cache.LRU[[]byte] // nil when caching is disabled
	source   *catalog.Source
	reloader *catalog.Reloader
	server   *http.Server
}

// buildComponents wires the application bottom-up. On error, anything
// already opened is closed.
func buildComponents(ctx context.Context, cfg *config.Config) (*components, error) {
	st, err := store.New(ctx, &cfg.Store, logging.WithComponent("store"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	c, err := buildRest(cfg, st)
	if err != nil {
		if closeErr := st.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing store")
		}
		return nil, err
	}
	return c, nil
}

func buildRest(cfg *config.Config, st store.Store) (*components, error) {
	fetcher := fetch.New(
		fetch.WithMaxAttempts(cfg.Fetch.MaxAttempts),
		fetch.WithDelay(cfg.Fetch.Delay),
		fetch.WithLogger(logging.WithComponent("fetch")),
	)

	opts := []tmdb.Option{
		tmdb.WithFetcher(fetcher),
		tmdb.WithLogger(logging.WithComponent("tmdb")),
	}
	var lru *cache.LRU[[]byte]
	if cfg.Cache.Enabled {
		lru = cache.NewLRU[[]byte](cfg.Cache.Capacity, cfg.Cache.TTL)
		opts = append(opts, tmdb.WithCache(lru))
	}
	provider, err := tmdb.New(&cfg.Provider, opts...)
	if err != nil {
		return nil, fmt.Errorf("create provider client: %w", err)
	}

	recommender, err := buildRecommender(cfg)
	if err != nil {
		return nil, err
	}

	source, err := catalog.Open(cfg.Recommend.ItemsPath, cfg.Recommend.PreferencesPath, logging.WithComponent("catalog"))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	reloader := catalog.NewReloader(source, recommender, logging.WithComponent("catalog"))

	agg := aggregate.New(provider, st, recommender,
		aggregate.WithRegion(cfg.Provider.Region),
		aggregate.WithEnricher(enrich.New(cfg.Enrich.Concurrency, logging.WithComponent("enrich"))),
		aggregate.WithLogger(logging.WithComponent("aggregate")),
	)

	handler := api.NewHandler(agg, st, reloader, recommender, cfg)
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, mw, logging.WithComponent("api"))

	return &components{
		store:    st,
		cache:    lru,
		source:   source,
		reloader: reloader,
		server:   newHTTPServer(&cfg.Server, router.SetupChi()),
	}, nil
}

// buildRecommender compiles the optional candidate filter into the recommender.
func buildRecommender(cfg *config.Config) (*recommend.Recommender, error) {
	logger := logging.WithComponent("recommend")

	f, err := filter.Compile(cfg.Recommend.Filter, logging.WithComponent("filter"))
	switch {
	case errors.Is(err, filter.ErrEmptyExpression):
		return recommend.New(logger), nil
	case err != nil:
		return nil, fmt.Errorf("compile recommendation filter: %w", err)
	}

	logging.Info().Str("filter", cfg.Recommend.Filter).Msg("Recommendation filter enabled")
	return recommend.New(logger, recommend.WithFilter(f)), nil
}

// close releases the catalog source and the store.
func (c *components) close() {
	if err := c.source.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing catalog source")
	}
	if err := c.store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing store")
	}
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Timeout,
		WriteTimeout:      cfg.Timeout,
		IdleTimeout:       2 * cfg.Timeout,
	}
}
