// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNew(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/v1/processes": okHandler}))

	require.NotNil(t, s)
	assert.NotNil(t, s.config)
	assert.NotNil(t, s.httpServer)
	assert.NotNil(t, s.rateLimiter)
	assert.Equal(t, "server", s.config.Name)
	assert.Contains(t, s.config.Handlers, "/v1/processes")
	assert.Contains(t, s.config.Handlers, "/", "default root handler")
}

func TestOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 9191
	cfg.RateLimit = 500

	s := New(
		WithConfig(cfg),
		WithName("ninvd"),
		WithVersion("1.2.3"),
		WithHandler(map[string]http.HandlerFunc{"/a": okHandler}),
		WithHandler(map[string]http.HandlerFunc{"/b": okHandler}),
	)

	assert.Equal(t, "ninvd", s.config.Name)
	assert.Equal(t, "1.2.3", s.config.Version)
	assert.Equal(t, 9191, s.config.Port)
	assert.Equal(t, ":9191", s.httpServer.Addr)
	assert.InDelta(t, 500, float64(s.config.RateLimit), 0)
	assert.Contains(t, s.config.Handlers, "/a")
	assert.Contains(t, s.config.Handlers, "/b")
}

func TestHealth(t *testing.T) {
	s := New()

	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	w = httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestReady(t *testing.T) {
	probeErr := stderrors.New("no process inventory yet")
	var failing bool

	s := New(WithReadinessProbe(func() error {
		if failing {
			return probeErr
		}
		return nil
	}))

	tests := []struct {
		name    string
		ready   bool
		failing bool
		want    int
		reason  string
	}{
		{"not started", false, false, http.StatusServiceUnavailable, "server is not accepting traffic"},
		{"started", true, false, http.StatusOK, ""},
		{"probe failing", true, true, http.StatusServiceUnavailable, probeErr.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)
			failing = tt.failing

			w := httptest.NewRecorder()
			s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			require.Equal(t, tt.want, w.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}
}

func TestRoutesThroughMux(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/v1/cpus": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		},
	}))
	h := s.httpServer.Handler

	tests := []struct {
		path string
		want int
	}{
		{"/v1/cpus", http.StatusTeapot},
		{"/health", http.StatusOK},
		{"/ready", http.StatusServiceUnavailable},
		{"/metrics", http.StatusOK},
		{"/", http.StatusOK},
		{"/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRootHandler(t *testing.T) {
	t.Run("lists routes", func(t *testing.T) {
		s := New(WithName("ninvd"), WithHandler(map[string]http.HandlerFunc{"/v1/units": okHandler}))

		w := httptest.NewRecorder()
		s.config.Handlers["/"](w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Service string   `json:"service"`
			Routes  []string `json:"routes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ninvd", body.Service)
		assert.Equal(t, []string{"/health", "/metrics", "/ready", "/v1/units"}, body.Routes)
	})

	t.Run("rejects other methods", func(t *testing.T) {
		s := New()

		w := httptest.NewRecorder()
		s.config.Handlers["/"](w, httptest.NewRequest(http.MethodDelete, "/", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, http.MethodGet, w.Header().Get("Allow"))
	})

	t.Run("custom root kept", func(t *testing.T) {
		called := false
		s := New(WithHandler(map[string]http.HandlerFunc{
			"/": func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			},
		}))

		s.config.Handlers["/"](httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, called)
	})
}

func TestStartAndShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 18181
	cfg.ShutdownTimeout = 100 * time.Millisecond

	s := New(WithConfig(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		ready, _ := s.isReady()
		return ready
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown timed out")
	}

	ready, _ := s.isReady()
	assert.False(t, ready)
}
