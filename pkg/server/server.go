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
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"

	"github.com/NVIDIA/node-inventory/pkg/errors"
	"github.com/NVIDIA/node-inventory/pkg/logging"
	"github.com/NVIDIA/node-inventory/pkg/serializer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Server is the HTTP front end of the daemon.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	probe       func() error

	mu    sync.RWMutex
	ready bool
}

// Option configures a Server.
type Option func(*Server)

// WithName sets the server name reported in logs.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the version reported in logs.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler adds routes. Later registrations of the same path win.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for path, h := range handlers {
			s.config.Handlers[path] = h
		}
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithReadinessProbe makes /ready report 503 while probe returns an error.
func WithReadinessProbe(probe func() error) Option {
	return func(s *Server) {
		s.probe = probe
	}
}

// New creates a Server. Routes are fixed at construction time.
func New(opts ...Option) *Server {
	s := &Server{
		config: parseConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.config.Handlers == nil {
		s.config.Handlers = make(map[string]http.HandlerFunc)
	}
	if _, ok := s.config.Handlers["/"]; !ok {
		s.config.Handlers["/"] = s.rootHandler()
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(slog.LevelWarn, false),
	}

	return s
}

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	for path, h := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(h))
	}

	return mux
}

// rootHandler lists the registered routes.
func (s *Server) rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
				"Method not allowed", false, map[string]any{"method": r.Method})
			return
		}
		if r.URL.Path != "/" {
			WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
				"Route not found", false, map[string]any{"path": r.URL.Path})
			return
		}

		routes := make([]string, 0, len(s.config.Handlers)+3)
		for path := range s.config.Handlers {
			if path != "/" {
				routes = append(routes, path)
			}
		}
		routes = append(routes, "/health", "/ready", "/metrics")
		slices.Sort(routes)

		serializer.RespondJSON(w, http.StatusOK, map[string]any{
			"service": s.config.Name,
			"version": s.config.Version,
			"routes":  routes,
		})
	}
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

func (s *Server) isReady() (bool, error) {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()
	if !ready {
		return false, nil
	}
	if s.probe != nil {
		if err := s.probe(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.setReady(true)
	slog.Info("server listening", "name", s.config.Name, "address", s.httpServer.Addr)

	select {
	case <-ctx.Done():
		return s.Shutdown(context.WithoutCancel(ctx))
	case err := <-errCh:
		s.setReady(false)
		return fmt.Errorf("server failed: %w", err)
	}
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.setReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "name", s.config.Name, "timeout", s.config.ShutdownTimeout)
	return s.httpServer.Shutdown(shutdownCtx)
}

// Run starts the server and blocks until SIGINT or SIGTERM, or until ctx
// is canceled.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server",
		"name", s.config.Name,
		"version", s.config.Version,
		"address", s.httpServer.Addr,
		"rateLimit", float64(s.config.RateLimit),
		"rateLimitBurst", s.config.RateLimitBurst,
		"readTimeout", s.config.ReadTimeout,
		"writeTimeout", s.config.WriteTimeout,
		"shutdownTimeout", s.config.ShutdownTimeout,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
