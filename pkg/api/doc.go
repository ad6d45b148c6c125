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


// Package api exposes the node inventory over HTTP.
//
// It is a thin layer over pkg/server: Serve loads the monitor configuration,
// starts the background refresh loops of pkg/monitor and registers the
// read-only inventory routes. Lifecycle, middleware and the system endpoints
// are handled by pkg/server.
//
// # Endpoints
//
// Application endpoints (rate limited, GET only):
//   - /v1/processes          - process inventory, flat list or forest
//   - /v1/cpus               - one record per logical core
//   - /v1/units              - systemd units with CanFreeze and CollectMode
//   - /v1/units/properties   - full property map of one unit
//
// System endpoints:
//   - /health  - liveness
//   - /ready   - readiness, 503 until the first process refresh completes
//   - /metrics - Prometheus metrics
//
// # Query Parameters (/v1/processes)
//
//   - view:   flat (default) or tree
//   - search: case-insensitive regular expression matched against name and
//     command line; in tree view ancestors of matches are kept
//   - sort:   name, pid, ppid, threads or cmdline
//
// Omitted parameters fall back to the monitor configuration. An empty
// search parameter (search=) disables filtering.
//
// # Configuration
//
// NINV_CONFIG points at an optional monitor config document (file path,
// http(s) URL or cm://namespace/name). NINV_* variables override it; PORT
// and SHUTDOWN_TIMEOUT_SECONDS configure the listener.
//
// # Errors
//
// Failures are returned as server.ErrorResponse. Invalid parameters map to
// 400, bus and introspection failures to 502, inventories not collected yet
// to 503.
package api
