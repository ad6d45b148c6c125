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

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Collector timeouts
		{"CollectorTimeout", CollectorTimeout, 5 * time.Second, 30 * time.Second},
		{"UnitRefreshTimeout", UnitRefreshTimeout, 10 * time.Second, 60 * time.Second},

		// Refresh intervals
		{"CPUInterval", CPUInterval, 500 * time.Millisecond, 10 * time.Second},
		{"ProcessInterval", ProcessInterval, 500 * time.Millisecond, 30 * time.Second},
		{"UnitInterval", UnitInterval, 1 * time.Second, 5 * time.Minute},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 60 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
		{"HTTPTLSHandshakeTimeout", HTTPTLSHandshakeTimeout, 1 * time.Second, 15 * time.Second},
		{"HTTPIdleConnTimeout", HTTPIdleConnTimeout, 30 * time.Second, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	// Read timeout should be shorter than write timeout
	if ServerReadTimeout > ServerWriteTimeout {
		t.Errorf("ServerReadTimeout (%v) should not exceed ServerWriteTimeout (%v)",
			ServerReadTimeout, ServerWriteTimeout)
	}

	// Idle timeout should be longer than write timeout
	if ServerIdleTimeout < ServerWriteTimeout {
		t.Errorf("ServerIdleTimeout (%v) should be at least ServerWriteTimeout (%v)",
			ServerIdleTimeout, ServerWriteTimeout)
	}
}

func TestRefreshIntervalRelationships(t *testing.T) {
	// Slower sources are polled less often
	if ProcessInterval < CPUInterval {
		t.Errorf("ProcessInterval (%v) should not be shorter than CPUInterval (%v)",
			ProcessInterval, CPUInterval)
	}

	if UnitInterval < ProcessInterval {
		t.Errorf("UnitInterval (%v) should not be shorter than ProcessInterval (%v)",
			UnitInterval, ProcessInterval)
	}

	if UnitReadConcurrency < 1 {
		t.Errorf("UnitReadConcurrency (%d) must be at least 1", UnitReadConcurrency)
	}
}

func TestHTTPClientTimeoutRelationships(t *testing.T) {
	// Connect timeout should be less than total timeout
	if HTTPConnectTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPConnectTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPConnectTimeout, HTTPClientTimeout)
	}
}
