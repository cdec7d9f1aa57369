// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// fakeHTTPServer blocks in ListenAndServe until Shutdown unless listenErr
// is set.
type fakeHTTPServer struct {
	listenErr   error
	shutdownErr error

	listens   atomic.Int32
	shutdowns atomic.Int32
	started   chan struct{}
	stopOnce  sync.Once
	stop      chan struct{}
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{
		started: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	f.listens.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	f.stopOnce.Do(func() { close(f.stop) })
	return f.shutdownErr
}

func waitStarted(t *testing.T, f *fakeHTTPServer) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
}

func TestNewHTTPServerService_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, 10 * time.Second},
		{-5 * time.Second, 10 * time.Second},
		{3 * time.Second, 3 * time.Second},
	}

	for _, tt := range tests {
		svc := NewHTTPServerService(newFakeHTTPServer(), tt.in, zerolog.Nop())
		if svc.shutdownTimeout != tt.want {
			t.Errorf("shutdownTimeout(%v) = %v, want %v", tt.in, svc.shutdownTimeout, tt.want)
		}
		if svc.String() != "http-server" {
			t.Errorf("String() = %q", svc.String())
		}
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Parallel()

	bindErr := errors.New("bind: address already in use")
	shutdownErr := errors.New("shutdown timeout")

	tests := []struct {
		name        string
		listenErr   error
		shutdownErr error
		cancel      bool
		wantErr     error
		wantShut    int32
	}{
		{name: "graceful shutdown", cancel: true, wantErr: context.Canceled, wantShut: 1},
		{name: "startup failure", listenErr: bindErr, wantErr: bindErr, wantShut: 0},
		{name: "shutdown failure", shutdownErr: shutdownErr, cancel: true, wantErr: shutdownErr, wantShut: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newFakeHTTPServer()
			server.listenErr = tt.listenErr
			server.shutdownErr = tt.shutdownErr
			svc := NewHTTPServerService(server, time.Second, zerolog.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			errCh := make(chan error, 1)
			go func() { errCh <- svc.Serve(ctx) }()

			waitStarted(t, server)
			if tt.cancel {
				cancel()
			}

			select {
			case err := <-errCh:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Serve() = %v, want %v", err, tt.wantErr)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Serve did not return")
			}

			if got := server.shutdowns.Load(); got != tt.wantShut {
				t.Errorf("Shutdown calls = %d, want %d", got, tt.wantShut)
			}
		})
	}
}

func TestHTTPServerService_RealServer(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(srv, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	// The handler itself is exercised without a socket.
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	t.Parallel()

	server := newFakeHTTPServer()
	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, time.Second, zerolog.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	waitStarted(t, server)
	cancel()
	<-errCh

	if server.shutdowns.Load() < 1 {
		t.Error("Shutdown was not called")
	}
}
