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
	"os"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := parseConfig()

		if cfg.Address != "" {
			t.Errorf("expected empty address, got %s", cfg.Address)
		}
		if cfg.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Port)
		}
		if cfg.RateLimit != 100 || cfg.RateLimitBurst != 200 {
			t.Errorf("expected rate limit 100/200, got %v/%d", cfg.RateLimit, cfg.RateLimitBurst)
		}
		if cfg.ReadTimeout != 10*time.Second {
			t.Errorf("expected read timeout 10s, got %v", cfg.ReadTimeout)
		}
		if cfg.ReadHeaderTimeout != 5*time.Second {
			t.Errorf("expected read header timeout 5s, got %v", cfg.ReadHeaderTimeout)
		}
		if cfg.WriteTimeout != 30*time.Second {
			t.Errorf("expected write timeout 30s, got %v", cfg.WriteTimeout)
		}
		if cfg.IdleTimeout != 120*time.Second {
			t.Errorf("expected idle timeout 120s, got %v", cfg.IdleTimeout)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
		}
	})

	tests := []struct {
		name  string
		key   string
		value string
		check func(*Config) bool
	}{
		{"port", "PORT", "9090", func(c *Config) bool { return c.Port == 9090 }},
		{"invalid port ignored", "PORT", "invalid", func(c *Config) bool { return c.Port == 8080 }},
		{"negative port ignored", "PORT", "-1", func(c *Config) bool { return c.Port == 8080 }},
		{"shutdown timeout", "SHUTDOWN_TIMEOUT_SECONDS", "5", func(c *Config) bool { return c.ShutdownTimeout == 5*time.Second }},
		{"zero shutdown ignored", "SHUTDOWN_TIMEOUT_SECONDS", "0", func(c *Config) bool { return c.ShutdownTimeout == 30*time.Second }},
		{"rate limit", "RATE_LIMIT", "10", func(c *Config) bool { return c.RateLimit == 10 && c.RateLimitBurst == 20 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if cfg := parseConfig(); !tt.check(cfg) {
				t.Errorf("%s=%q not applied as expected: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestNewConfigIgnoresUnsetEnv(t *testing.T) {
	os.Unsetenv("PORT")
	if cfg := NewConfig(); cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
}
