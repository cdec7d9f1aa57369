// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/fetch"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// maxErrorBodySize limits how much of an error response is kept.
const maxErrorBodySize = 64 * 1024

// maxBodySize limits successful response bodies.
const maxBodySize = 8 << 20

// StatusError is returned for a non-2xx provider response.
type StatusError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s: status %d: %s", e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether err, or anything it wraps, is a 404 from the provider.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// readBodyForError reads at most maxErrorBodySize bytes for diagnostics.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	if len(body) == maxErrorBodySize {
		return string(body) + "\n... (truncated)"
	}
	return string(body)
}

// Client talks to the TMDB v3 API.
type Client struct {
	baseURL      string
	apiKey       string
	imageBaseURL string
	language     string

	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	fetcher *fetch.Fetcher
	cache   *cache.LRU[[]byte]
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithFetcher sets the retry policy. The default is fetch.New().
func WithFetcher(f *fetch.Fetcher) Option {
	return func(c *Client) {
		c.fetcher = f
	}
}

// WithCache enables response caching.
func WithCache(lru *cache.LRU[[]byte]) Option {
	return func(c *Client) {
		c.cache = lru
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the client logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client from provider configuration.
func New(cfg *config.ProviderConfig, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("tmdb: api key is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("tmdb: invalid base url: %w", err)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		imageBaseURL: cfg.ImageBaseURL,
		language:     cfg.Language,
		http:         &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(limit, burst),
		cb:           newBreaker("tmdb-api"),
		logger:       logging.WithComponent("tmdb"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		c.fetcher = fetch.New(fetch.WithLogger(c.logger))
	}
	return c, nil
}

// get fetches path with retries and decodes the JSON body into out.
// endpoint names the call for metrics and retry bookkeeping.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	key := path + "?" + params.Encode()

	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			metrics.RecordProviderCache(endpoint, true)
			return c.decode(endpoint, body, out)
		}
		metrics.RecordProviderCache(endpoint, false)
	}

	body, err := fetch.Fetch(ctx, c.fetcher, endpoint, func(ctx context.Context) ([]byte, error) {
		return c.attempt(ctx, path, params)
	})
	if err != nil {
		return err
	}

	if err := c.decode(endpoint, body, out); err != nil {
		return err
	}
	if c.cache != nil {
		c.cache.Set(key, body)
	}
	return nil
}

func (c *Client) decode(endpoint string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode tmdb %s response: %w", endpoint, err)
	}
	return nil
}

// attempt is a single rate-limited, circuit-protected request.
func (c *Client) attempt(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tmdb rate limiter: %w", err)
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, path, params)
	})
	recordBreakerResult(c.cb, err)
	return body, err
}

func (c *Client) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Keep the API key out of logs and error bodies.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = c.baseURL + path
		}
		return nil, fmt.Errorf("tmdb %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Body:       readBodyForError(resp.Body),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read tmdb %s response: %w", path, err)
	}
	return body, nil
}
