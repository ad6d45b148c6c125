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

package cpu

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/node-inventory/pkg/errors"
)

const x86CPUInfo = `processor	: 0
vendor_id	: GenuineIntel
model name	: Intel(R) Xeon(R) CPU E5-2680 v4 @ 2.40GHz
cpu MHz		: 2400.000
cache size	: 35840 KB
flags		: fpu vme de pse

processor	: 1
vendor_id	: GenuineIntel
model name	: Intel(R) Xeon(R) CPU E5-2680 v4 @ 2.40GHz
cpu MHz		: 2399.998
cache size	: 35840 KB
flags		: fpu vme de pse

`

const armCPUInfo = `processor	: 0
BogoMIPS	: 48.00
CPU implementer	: 0x41

processor	: 1
BogoMIPS	: 48.00
CPU implementer	: 0x41

Hardware	: BCM2835
Revision	: c03111
`

func TestParseCoreRecord(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected CoreRecord
		wantErr  bool
	}{
		{
			name: "full block",
			raw:  "processor\t: 3\nmodel name\t: AMD EPYC 7763\ncpu MHz\t\t: 3529.042\ncache size\t: 512 KB\n",
			expected: CoreRecord{
				ModelName:    "AMD EPYC 7763",
				Index:        3,
				FrequencyMHz: "3529.042",
				CacheSize:    "512 KB",
			},
		},
		{
			name:     "absent labels stay empty",
			raw:      "processor\t: 0\nBogoMIPS\t: 48.00\n",
			expected: CoreRecord{Index: 0},
		},
		{
			name:    "non-numeric processor",
			raw:     "processor\t: zero\nmodel name\t: X\n",
			wantErr: true,
		},
		{
			name:    "negative processor",
			raw:     "processor\t: -1\n",
			wantErr: true,
		},
		{
			name:    "no processor",
			raw:     "Hardware\t: BCM2835\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoreRecord(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedRecord))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCPUInfo(t *testing.T) {
	t.Run("x86", func(t *testing.T) {
		cores := ParseCPUInfo(x86CPUInfo)
		require.Len(t, cores, 2)
		assert.Equal(t, 0, cores[0].Index)
		assert.Equal(t, 1, cores[1].Index)
		assert.Equal(t, "2399.998", cores[1].FrequencyMHz)
		assert.Equal(t, "Intel(R) Xeon(R) CPU E5-2680 v4 @ 2.40GHz", cores[0].ModelName)
	})

	t.Run("arm summary block skipped", func(t *testing.T) {
		cores := ParseCPUInfo(armCPUInfo)
		require.Len(t, cores, 2)
		assert.Empty(t, cores[0].ModelName)
	})

	t.Run("malformed block skipped", func(t *testing.T) {
		cores := ParseCPUInfo("processor\t: 0\n\nprocessor\t: x\n\nprocessor\t: 2\n")
		require.Len(t, cores, 2)
		assert.Equal(t, []int{0, 2}, []int{cores[0].Index, cores[1].Index})
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ParseCPUInfo(""))
	})
}

func TestCollector_Collect(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "cpuinfo"), []byte(x86CPUInfo), 0o600))

	cores, err := NewCollector(WithRoot(root)).Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, cores, 2)
}

func TestCollector_Missing(t *testing.T) {
	_, err := NewCollector(WithRoot(t.TempDir())).Collect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

func TestCollector_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollector().Collect(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollector_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := os.Stat("/proc/cpuinfo"); err != nil {
		t.Skip("/proc/cpuinfo not available")
	}

	cores, err := NewCollector().Collect(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, cores)
}
