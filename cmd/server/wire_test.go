// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 0, Timeout: 5 * time.Second, ShutdownTimeout: time.Second},
		Security: config.SecurityConfig{RateLimitDisabled: true},
		Provider: config.ProviderConfig{
			BaseURL:  "http://127.0.0.1:1",
			APIKey:   "test-key",
			Language: "fr-FR",
			Region:   "FR",
			Timeout:  time.Second,
		},
		Fetch:  config.FetchConfig{MaxAttempts: 1, Delay: 0},
		Cache:  config.CacheConfig{Enabled: true, Capacity: 16, TTL: time.Minute},
		Recommend: config.RecommendConfig{
			ItemsPath:       filepath.Join(dir, "items.csv"),
			PreferencesPath: filepath.Join(dir, "users.csv"),
			DefaultCount:    5,
			MaxCount:        100,
		},
		Store: config.StoreConfig{Backend: config.StoreBackendBadger, BadgerInMemory: true, ConflictRetries: 3},
	}
}

func TestBuildComponents(t *testing.T) {
	cfg := testConfig(t)

	comps, err := buildComponents(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildComponents() error = %v", err)
	}
	t.Cleanup(comps.close)

	if comps.cache == nil {
		t.Error("cache should be built when enabled")
	}
	if comps.server.Addr != "127.0.0.1:0" {
		t.Errorf("Addr = %q", comps.server.Addr)
	}

	// Missing CSVs load the empty snapshot without error.
	stats, err := comps.reloader.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if stats.Items != 0 || stats.Users != 0 {
		t.Errorf("stats = %+v, want empty", stats)
	}

	rec := httptest.NewRecorder()
	comps.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/1", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("recommendations status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestBuildRecommender_Filter(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{"no filter", "", false},
		{"valid filter", `item.genre != "Horror"`, false},
		{"invalid filter", `item.genre ==`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Recommend.Filter = tt.expr
			rec, err := buildRecommender(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildRecommender() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && rec == nil {
				t.Error("recommender should not be nil")
			}
		})
	}
}

func TestBuildComponents_StoreFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Backend = "etcd"

	if _, err := buildComponents(context.Background(), cfg); err == nil {
		t.Fatal("expected an error for an unknown store backend")
	}
}

func TestNewHTTPServer(t *testing.T) {
	srv := newHTTPServer(&config.ServerConfig{Host: "::1", Port: 8000, Timeout: 30 * time.Second}, http.NotFoundHandler())

	if srv.Addr != "[::1]:8000" {
		t.Errorf("Addr = %q, want [::1]:8000", srv.Addr)
	}
	if srv.WriteTimeout != 30*time.Second || srv.IdleTimeout != time.Minute {
		t.Errorf("timeouts = %v/%v", srv.WriteTimeout, srv.IdleTimeout)
	}
}

func TestNewHTTPServer_OutlastsRetryBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.ConfigPathEnvVar, path)
	t.Setenv("TMDB_API_KEY", "test-key")

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	srv := newHTTPServer(&cfg.Server, http.NotFoundHandler())

	budget := config.EnrichmentPhases * cfg.LookupBudget()
	if srv.WriteTimeout <= budget {
		t.Errorf("WriteTimeout = %v, want > %v", srv.WriteTimeout, budget)
	}
	if srv.ReadTimeout <= budget {
		t.Errorf("ReadTimeout = %v, want > %v", srv.ReadTimeout, budget)
	}

	short := *cfg
	short.Server.Timeout = 30 * time.Second
	if err := short.Validate(); err == nil {
		t.Error("Validate() accepted a 30s timeout with default retries")
	}
}
