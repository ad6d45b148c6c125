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
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"golang.org/x/time/rate"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers maps a route pattern to its handler.
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	// Rate limiting: requests per second and bucket size.
	RateLimit      rate.Limit
	RateLimitBurst int

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a Config populated from defaults and the environment.
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              8080,
		RateLimit:         100,
		RateLimitBurst:    200,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if port, ok := positiveEnv("PORT"); ok {
		cfg.Port = port
	}

	// Keep shutdown within the pod's termination grace period.
	if seconds, ok := positiveEnv("SHUTDOWN_TIMEOUT_SECONDS"); ok {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	if limit, ok := positiveEnv("RATE_LIMIT"); ok {
		cfg.RateLimit = rate.Limit(limit)
		cfg.RateLimitBurst = 2 * limit
	}

	return cfg
}

func positiveEnv(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
