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
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/NVIDIA/node-inventory/pkg/errors"
	"github.com/google/uuid"
)

// withMiddleware wraps a route handler in the standard chain. Panic
// recovery sits in front of the limiter so a panicking request still
// consumes a token.
func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.metricsMiddleware(
		s.versionMiddleware(
			s.requestIDMiddleware(
				s.panicRecoveryMiddleware(
					s.rateLimitMiddleware(
						s.loggingMiddleware(handler),
					),
				),
			),
		),
	)
}

func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := negotiateAPIVersion(r)
		SetAPIVersionHeader(w, version)
		ctx := context.WithValue(r.Context(), contextKeyAPIVersion, version)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requestIDMiddleware propagates a client supplied X-Request-Id when it is
// a valid UUID and generates one otherwise.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-Id", requestID)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow() {
			rateLimitRejects.Inc()
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, errors.ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]any{
					"limit": float64(s.config.RateLimit),
					"burst": s.config.RateLimitBurst,
				})
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(int(s.config.RateLimit)))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(s.rateLimiter.Tokens())))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10))

		next.ServeHTTP(w, r)
	}
}

func (s *Server) panicRecoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				panicRecoveries.Inc()
				slog.Error("panic recovered",
					"error", fmt.Sprint(rec),
					"requestID", r.Context().Value(contextKeyRequestID),
					"method", r.Method,
					"path", r.URL.Path,
				)
				WriteError(w, r, http.StatusInternalServerError, errors.ErrCodeInternal,
					"Internal server error", true, nil)
			}
		}()
		next.ServeHTTP(w, r)
	}
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		slog.Debug("request completed",
			"requestID", r.Context().Value(contextKeyRequestID),
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", rw.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
