// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog loading (DuckDB)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Retrying fetcher
	FetchAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_attempts_total",
			Help: "Total number of external lookup attempts",
		},
		[]string{"resource", "outcome"}, // outcome: "success", "failure"
	)

	FetchExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_exhausted_total",
			Help: "Total number of lookups that failed after all attempts",
		},
		[]string{"resource"},
	)

	// Enrichment
	EnrichmentDefaulted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_defaulted_total",
			Help: "Total number of enrichment lookups replaced by a neutral default",
		},
		[]string{"kind"},
	)

	EnrichmentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enrichment_batch_duration_seconds",
			Help:    "Wall time of one enrichment fan-out batch",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)

	// Provider response cache
	ProviderCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_cache_hits_total",
			Help: "Total number of provider responses served from cache",
		},
		[]string{"endpoint"},
	)

	ProviderCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_cache_misses_total",
			Help: "Total number of provider lookups that missed the cache",
		},
		[]string{"endpoint"},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommender
	RecommenderSnapshotUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommender_snapshot_users",
			Help: "Number of users in the active recommender snapshot",
		},
	)

	RecommenderSnapshotItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommender_snapshot_items",
			Help: "Number of catalog items in the active recommender snapshot",
		},
	)

	RecommenderSnapshotLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommender_snapshot_loaded_timestamp_seconds",
			Help: "Unix time the active snapshot was built",
		},
	)

	RecommenderReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_reloads_total",
			Help: "Total number of snapshot reloads",
		},
		[]string{"result"}, // "success", "missing", "error"
	)

	RecommenderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_requests_total",
			Help: "Total number of recommendation requests by strategy",
		},
		[]string{"strategy"}, // "hybrid", "related", "popular"
	)

	RecommenderCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommender_candidates",
			Help:    "Number of candidates returned per request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"strategy"},
	)

	// Favorites store
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of favorites/profile store operations",
		},
		[]string{"backend", "operation", "result"},
	)

	StoreConflictRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_conflict_retries_total",
			Help: "Total number of optimistic transaction retries",
		},
		[]string{"backend"},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordFetchAttempt records one attempt of a retried lookup.
func RecordFetchAttempt(resource string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	FetchAttempts.WithLabelValues(resource, outcome).Inc()
}

// RecordFetchExhausted records a lookup that ran out of attempts.
func RecordFetchExhausted(resource string) {
	FetchExhausted.WithLabelValues(resource).Inc()
}

// RecordEnrichment records one fan-out batch and how many items fell back to a default.
func RecordEnrichment(kind string, duration time.Duration, defaulted int) {
	EnrichmentDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if defaulted > 0 {
		EnrichmentDefaulted.WithLabelValues(kind).Add(float64(defaulted))
	}
}

// RecordProviderCache records a provider cache lookup.
func RecordProviderCache(endpoint string, hit bool) {
	if hit {
		ProviderCacheHits.WithLabelValues(endpoint).Inc()
		return
	}
	ProviderCacheMisses.WithLabelValues(endpoint).Inc()
}

// RecordSnapshot publishes the size of a newly installed recommender snapshot.
func RecordSnapshot(users, items int, builtAt time.Time) {
	RecommenderSnapshotUsers.Set(float64(users))
	RecommenderSnapshotItems.Set(float64(items))
	RecommenderSnapshotLoaded.Set(float64(builtAt.Unix()))
}

// RecordReload records the outcome of a snapshot reload.
func RecordReload(result string) {
	RecommenderReloads.WithLabelValues(result).Inc()
}

// RecordRecommendation records one recommendation request.
func RecordRecommendation(strategy string, candidates int) {
	RecommenderRequests.WithLabelValues(strategy).Inc()
	RecommenderCandidates.WithLabelValues(strategy).Observe(float64(candidates))
}

// RecordStoreOperation records a favorites/profile store call.
func RecordStoreOperation(backend, operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	StoreOperations.WithLabelValues(backend, operation, result).Inc()
}
