// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

const (
	// DefaultMaxAttempts is the number of tries before giving up.
	DefaultMaxAttempts = 5

	// DefaultDelay is the constant pause between failed attempts.
	DefaultDelay = 5 * time.Second
)

// FetchExhausted is returned when every attempt of a lookup failed.
//
//nolint:revive // the name reads better at call sites than fetch.Exhausted
type FetchExhausted struct {
	Resource  string
	Attempts  int
	LastError error
}

func (e *FetchExhausted) Error() string {
	return fmt.Sprintf("fetch %s: gave up after %d attempt(s): %v", e.Resource, e.Attempts, e.LastError)
}

// Unwrap exposes the last failure to errors.Is and errors.As.
func (e *FetchExhausted) Unwrap() error {
	return e.LastError
}

// IsExhausted reports whether err is, or wraps, a *FetchExhausted.
func IsExhausted(err error) bool {
	var fe *FetchExhausted
	return errors.As(err, &fe)
}

// waitFunc pauses for d or until ctx is done, whichever comes first.
type waitFunc func(ctx context.Context, d time.Duration) error

func contextWait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fetcher retries a lookup with a fixed delay. It is safe for concurrent use
// and holds no per-call state.
type Fetcher struct {
	maxAttempts int
	delay       time.Duration
	wait        waitFunc
	logger      zerolog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxAttempts sets the attempt budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		if n >= 1 {
			f.maxAttempts = n
		}
	}
}

// WithDelay sets the pause between attempts. Zero retries immediately.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.delay = d
		}
	}
}

// WithLogger sets the logger used for retry and exhaustion events.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// New creates a Fetcher with DefaultMaxAttempts and DefaultDelay unless
// overridden.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		maxAttempts: DefaultMaxAttempts,
		delay:       DefaultDelay,
		wait:        contextWait,
		logger:      logging.WithComponent("fetch"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// MaxAttempts returns the configured attempt budget.
func (f *Fetcher) MaxAttempts() int { return f.maxAttempts }

// Delay returns the configured pause between attempts.
func (f *Fetcher) Delay() time.Duration { return f.delay }

// Do runs op until it succeeds or the attempt budget is spent. resource names
// the lookup in logs, metrics and the returned *FetchExhausted.
func (f *Fetcher) Do(ctx context.Context, resource string, op func(ctx context.Context) error) error {
	var lastErr error
	logger := logging.CtxLogger(ctx, f.logger)

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		lastErr = op(ctx)
		metrics.RecordFetchAttempt(resource, lastErr)
		if lastErr == nil {
			return nil
		}

		if attempt == f.maxAttempts {
			break
		}

		logger.Debug().
			Err(lastErr).
			Str("resource", resource).
			Int("attempt", attempt).
			Int("max_attempts", f.maxAttempts).
			Dur("delay", f.delay).
			Msg("Lookup failed, retrying")

		if waitErr := f.wait(ctx, f.delay); waitErr != nil {
			return exhausted(logger, resource, attempt, errors.Join(lastErr, waitErr))
		}
	}

	return exhausted(logger, resource, f.maxAttempts, lastErr)
}

func exhausted(logger *zerolog.Logger, resource string, attempts int, lastErr error) *FetchExhausted {
	metrics.RecordFetchExhausted(resource)
	logger.Warn().
		Err(lastErr).
		Str("resource", resource).
		Int("attempts", attempts).
		Msg("Lookup exhausted")
	return &FetchExhausted{Resource: resource, Attempts: attempts, LastError: lastErr}
}

// Fetch is the value-returning form of Do. On failure the zero value of T is
// returned; a value from a failed attempt is never handed back.
func Fetch[T any](ctx context.Context, f *Fetcher, resource string, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := f.Do(ctx, resource, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
