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

package defaults

import "time"

// Collector timeouts for data collection operations.
const (
	// CollectorTimeout is the default timeout for local procfs collection.
	// Collectors should respect parent context deadlines when shorter.
	CollectorTimeout = 10 * time.Second

	// UnitRefreshTimeout bounds one full unit refresh: introspection plus
	// three property reads per discovered unit.
	UnitRefreshTimeout = 30 * time.Second

	// UnitReadConcurrency is the default number of units whose properties
	// are read in parallel during a refresh.
	UnitReadConcurrency = 8
)

// Refresh intervals used by the daemon scheduler.
const (
	// CPUInterval is how often the CPU inventory is re-read.
	CPUInterval = 1 * time.Second

	// ProcessInterval is how often the process inventory is re-collected.
	ProcessInterval = 2 * time.Second

	// UnitInterval is how often the unit inventory is re-queried.
	UnitInterval = 10 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout bounds the TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPIdleConnTimeout is how long idle keep-alive connections are kept.
	HTTPIdleConnTimeout = 90 * time.Second
)

// ConfigMap timeouts for Kubernetes ConfigMap operations.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLISnapshotTimeout is the default timeout for snapshot operations.
	CLISnapshotTimeout = 2 * time.Minute

	// OCIPushTimeout bounds publishing a snapshot to an OCI registry.
	OCIPushTimeout = 2 * time.Minute
)
