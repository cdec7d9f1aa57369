// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
)

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/favorites", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/v1/movies/603", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec, resp := s.do(t, tt.method, tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if resp.Status != "error" || resp.Error == nil {
				t.Errorf("expected an error envelope, got %s", rec.Body.String())
			}
		})
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	s.do(t, http.MethodGet, "/api/v1/health/live", "")

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `api_requests_total{endpoint="/api/v1/health/live"`) {
		t.Error("metrics output should carry the route-pattern label for health/live")
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	rec, _ := s.do(t, http.MethodGet, "/api/v1/health/live", "")

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security.CORSOrigins = []string{"https://app.example.com"}
	h := NewHandler(&fakeAggregator{}, newTestStore(t), nil, nil, cfg)
	handler := NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security)), zerolog.Nop()).SetupChi()

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{"https://app.example.com", "https://app.example.com"},
		{"https://evil.example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/favorites", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security = config.SecurityConfig{RateLimitReqs: 2, RateLimitWindow: time.Minute}
	h := NewHandler(&fakeAggregator{}, newTestStore(t), nil, nil, cfg)
	handler := NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security)), zerolog.Nop()).SetupChi()

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/1", nil)
		req.RemoteAddr = "192.0.2.10:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}

	// Health probes are outside the limited group.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.RemoteAddr = "192.0.2.10:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health probe status = %d, want 200", rec.Code)
	}
}

func TestRouter_RecovererReturns500(t *testing.T) {
	t.Parallel()

	agg := &panickingAggregator{}
	h := NewHandler(agg, newTestStore(t), nil, nil, testConfig())
	handler := NewRouter(h, NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true}), zerolog.Nop()).SetupChi()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/1", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

type panickingAggregator struct{ fakeAggregator }

func (p *panickingAggregator) Hybrid(_ context.Context, _, _ int, _ bool) []models.HybridRecommendation {
	panic("boom")
}
