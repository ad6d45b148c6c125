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


// Package server provides the HTTP plumbing shared by the ninvd daemon.
//
// A Server owns an http.Server, a token bucket rate limiter and a readiness
// flag. Callers register their routes as a map of path to handler; every
// registered route is wrapped in the same middleware chain:
//
//	metrics -> version -> request ID -> panic recovery -> rate limit -> logging
//
// The system endpoints are registered without middleware:
//
//	GET /health   liveness, always 200 while the process runs
//	GET /ready    readiness, 503 until Start runs and the readiness probe passes
//	GET /metrics  Prometheus exposition
//
// When no "/" route is registered, a default root handler lists the
// registered routes.
//
// Usage:
//
//	s := server.New(
//	    server.WithName("ninvd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/processes": h.HandleProcesses,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Errors are returned to clients as ErrorResponse documents. Handlers should
// prefer WriteErrorFromErr, which derives the HTTP status and the retryable
// flag from the pkg/errors code carried by the error.
//
// Environment:
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
//	RATE_LIMIT                requests per second (default 100)
package server
