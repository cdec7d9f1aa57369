// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/tmdb"
)

var (
	// ErrNotFound means the provider has no such movie.
	ErrNotFound = errors.New("not found")

	// ErrUpstream means a required provider lookup failed after all retries.
	ErrUpstream = errors.New("upstream provider failure")

	// ErrStore means the preference store could not be read.
	ErrStore = errors.New("preference store failure")
)

// Provider is the metadata and availability source.
type Provider interface {
	Movie(ctx context.Context, id int) (models.Movie, error)
	Search(ctx context.Context, query string) ([]models.Movie, error)
	Popular(ctx context.Context) ([]models.Movie, error)
	Related(ctx context.Context, id int) ([]models.Movie, error)
	WatchProviders(ctx context.Context, id int, region string) (models.WatchProviders, error)
}

// FavoritesReader reads a user's favorite movie IDs.
type FavoritesReader interface {
	Favorites(ctx context.Context, userID string) ([]int, error)
}

// Aggregator builds API results.
type Aggregator struct {
	provider    Provider
	favorites   FavoritesReader
	recommender *recommend.Recommender
	enricher    *enrich.Enricher
	region      string
	logger      zerolog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithEnricher sets the enrichment fan-out. The default is unbounded.
func WithEnricher(e *enrich.Enricher) Option {
	return func(a *Aggregator) {
		a.enricher = e
	}
}

// WithRegion sets the watch-provider region. The default is FR.
func WithRegion(region string) Option {
	return func(a *Aggregator) {
		if region != "" {
			a.region = region
		}
	}
}

// WithLogger sets the logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = l
	}
}

// New creates an Aggregator.
func New(provider Provider, favorites FavoritesReader, recommender *recommend.Recommender, opts ...Option) *Aggregator {
	a := &Aggregator{
		provider:    provider,
		favorites:   favorites,
		recommender: recommender,
		region:      "FR",
		logger:      logging.WithComponent("aggregate"),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.enricher == nil {
		a.enricher = enrich.New(0, a.logger)
	}
	return a
}

// Region returns the watch-provider region.
func (a *Aggregator) Region() string {
	return a.region
}

func upstream(err error) error {
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

func movieIDs(movies []models.Movie) []int {
	ids := make([]int, len(movies))
	for i := range movies {
		ids[i] = movies[i].ID
	}
	return ids
}

// providersFor looks up availability for ids concurrently, defaulting on failure.
func (a *Aggregator) providersFor(ctx context.Context, ids []int) []models.WatchProviders {
	return a.providersIn(ctx, ids, a.region)
}

func (a *Aggregator) providersIn(ctx context.Context, ids []int, region string) []models.WatchProviders {
	return enrich.All(ctx, a.enricher, "watch_providers", ids,
		func(ctx context.Context, id int) (models.WatchProviders, error) {
			return a.provider.WatchProviders(ctx, id, region)
		},
		func(int) models.WatchProviders { return models.DefaultWatchProviders() },
	)
}

// withProviders attaches availability to every movie, preserving order.
func (a *Aggregator) withProviders(ctx context.Context, movies []models.Movie) []models.EnrichedMovie {
	wps := a.providersFor(ctx, movieIDs(movies))
	out := make([]models.EnrichedMovie, len(movies))
	for i := range movies {
		out[i] = models.EnrichedMovie{Movie: movies[i], WatchProviders: wps[i]}
	}
	return out
}

// Recommend returns provider-side recommendations for a user.
//
// Without favorites the popular list seeds the result and its failure is an
// error. With favorites, related titles are fetched per favorite and merged by
// movie ID: first-seen order, last-seen value. A favorite whose related lookup
// fails contributes nothing.
func (a *Aggregator) Recommend(ctx context.Context, userID string) ([]models.EnrichedMovie, error) {
	favs, err := a.favorites.Favorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	var seeds []models.Movie
	if len(favs) == 0 {
		seeds, err = a.provider.Popular(ctx)
		if err != nil {
			return nil, upstream(err)
		}
		seeds = unionByID([][]models.Movie{seeds})
	} else {
		lists := enrich.All(ctx, a.enricher, "related", favs,
			a.provider.Related,
			func(int) []models.Movie { return nil },
		)
		seeds = unionByID(lists)
	}

	a.logger.Debug().
		Str("user_id", userID).
		Int("favorites", len(favs)).
		Int("candidates", len(seeds)).
		Msg("Provider recommendations assembled")

	return a.withProviders(ctx, seeds), nil
}

// unionByID merges lists keyed by movie ID. Each ID keeps the position of its
// first occurrence and the value of its last.
func unionByID(lists [][]models.Movie) []models.Movie {
	index := make(map[int]int)
	out := make([]models.Movie, 0)
	for _, list := range lists {
		for _, m := range list {
			if i, ok := index[m.ID]; ok {
				out[i] = m
				continue
			}
			index[m.ID] = len(out)
			out = append(out, m)
		}
	}
	return out
}

// Search returns movies matching query with their availability.
func (a *Aggregator) Search(ctx context.Context, query string) ([]models.EnrichedMovie, error) {
	movies, err := a.provider.Search(ctx, query)
	if err != nil {
		return nil, upstream(err)
	}
	return a.withProviders(ctx, movies), nil
}

// Favorites returns the details and availability of a user's favorites.
// Favorites whose details cannot be fetched are omitted.
func (a *Aggregator) Favorites(ctx context.Context, userID string) ([]models.EnrichedMovie, error) {
	favs, err := a.favorites.Favorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if len(favs) == 0 {
		return []models.EnrichedMovie{}, nil
	}

	details := enrich.All(ctx, a.enricher, "movie", favs,
		func(ctx context.Context, id int) (*models.Movie, error) {
			m, err := a.provider.Movie(ctx, id)
			if err != nil {
				return nil, err
			}
			return &m, nil
		},
		func(int) *models.Movie { return nil },
	)
	found := enrich.Compact(details, func(m *models.Movie) bool { return m != nil })

	movies := make([]models.Movie, len(found))
	for i, m := range found {
		movies[i] = *m
	}
	return a.withProviders(ctx, movies), nil
}

// Movie returns one movie with its availability. A provider 404 is reported
// as ErrNotFound and any other failure as ErrUpstream.
func (a *Aggregator) Movie(ctx context.Context, id int) (models.EnrichedMovie, error) {
	m, err := a.provider.Movie(ctx, id)
	if err != nil {
		if tmdb.IsNotFound(err) {
			return models.EnrichedMovie{}, fmt.Errorf("movie %d: %w", id, ErrNotFound)
		}
		return models.EnrichedMovie{}, upstream(err)
	}
	return a.withProviders(ctx, []models.Movie{m})[0], nil
}

// WatchProviders returns availability for one movie, or the default when the
// lookup fails.
func (a *Aggregator) WatchProviders(ctx context.Context, id int) models.WatchProviders {
	return a.providersFor(ctx, []int{id})[0]
}

// WatchProvidersIn is WatchProviders for an explicit region. An empty region
// uses the configured one.
func (a *Aggregator) WatchProvidersIn(ctx context.Context, id int, region string) models.WatchProviders {
	if region == "" {
		region = a.region
	}
	return a.providersIn(ctx, []int{id}, region)[0]
}

// Hybrid returns up to n catalog recommendations for a catalog user. With
// withProviders set, each candidate's item ID is looked up as a provider
// movie ID.
func (a *Aggregator) Hybrid(ctx context.Context, userID, n int, withProviders bool) []models.HybridRecommendation {
	cands := a.recommender.GetRecommendations(ctx, userID, n)

	out := make([]models.HybridRecommendation, len(cands))
	for i, c := range cands {
		out[i] = models.HybridRecommendation{Candidate: c}
	}
	if !withProviders || len(cands) == 0 {
		return out
	}

	ids := make([]int, len(cands))
	for i, c := range cands {
		ids[i] = c.ItemID
	}
	wps := a.providersFor(ctx, ids)
	for i := range out {
		wp := wps[i]
		out[i].WatchProviders = &wp
	}
	return out
}
