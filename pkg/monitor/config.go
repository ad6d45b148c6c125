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


package monitor

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/NVIDIA/node-inventory/pkg/collector/process"
	"github.com/NVIDIA/node-inventory/pkg/collector/systemd"
	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"github.com/NVIDIA/node-inventory/pkg/errors"
	model "github.com/NVIDIA/node-inventory/pkg/process"
	"github.com/NVIDIA/node-inventory/pkg/serializer"
)

// EnvConfig names the variable holding the config document location.
const EnvConfig = "NINV_CONFIG"

// Config controls what the monitor collects and how often.
//
// Durations are written as Go duration strings in YAML ("2s", "500ms").
type Config struct {
	// ProcRoot is the procfs mount, /proc unless running in a container
	// with the host procfs mounted elsewhere.
	ProcRoot    string `json:"procRoot,omitempty" yaml:"procRoot,omitempty"`
	SkipThreads bool   `json:"skipThreads,omitempty" yaml:"skipThreads,omitempty"`

	Bus             string `json:"bus,omitempty" yaml:"bus,omitempty"`
	UnitConcurrency int    `json:"unitConcurrency,omitempty" yaml:"unitConcurrency,omitempty"`
	SkipUnits       bool   `json:"skipUnits,omitempty" yaml:"skipUnits,omitempty"`

	// SortKey and Search shape the default process views.
	SortKey string `json:"sortKey,omitempty" yaml:"sortKey,omitempty"`
	Search  string `json:"search,omitempty" yaml:"search,omitempty"`

	CPUInterval     time.Duration `json:"cpuInterval,omitempty" yaml:"cpuInterval,omitempty"`
	ProcessInterval time.Duration `json:"processInterval,omitempty" yaml:"processInterval,omitempty"`
	UnitInterval    time.Duration `json:"unitInterval,omitempty" yaml:"unitInterval,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		ProcRoot:        process.DefaultRoot,
		Bus:             string(systemd.BusSystem),
		UnitConcurrency: defaults.UnitReadConcurrency,
		SortKey:         string(model.DefaultSortKey),
		CPUInterval:     defaults.CPUInterval,
		ProcessInterval: defaults.ProcessInterval,
		UnitInterval:    defaults.UnitInterval,
	}
}

// LoadConfig builds a Config from defaults, the document at src (skipped
// when src is empty) and the environment, then validates it.
func LoadConfig(ctx context.Context, src string) (Config, error) {
	cfg := DefaultConfig()

	if src != "" {
		loaded, err := serializer.FromFile[Config](ctx, src)
		if err != nil {
			return Config{}, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"failed to load monitor config", err, map[string]any{"source": src})
		}
		cfg.merge(*loaded)
		slog.Debug("loaded monitor config", "source", src)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge copies every non-zero field of o into c.
func (c *Config) merge(o Config) {
	if o.ProcRoot != "" {
		c.ProcRoot = o.ProcRoot
	}
	if o.Bus != "" {
		c.Bus = o.Bus
	}
	if o.UnitConcurrency != 0 {
		c.UnitConcurrency = o.UnitConcurrency
	}
	if o.SortKey != "" {
		c.SortKey = o.SortKey
	}
	if o.Search != "" {
		c.Search = o.Search
	}
	if o.CPUInterval != 0 {
		c.CPUInterval = o.CPUInterval
	}
	if o.ProcessInterval != 0 {
		c.ProcessInterval = o.ProcessInterval
	}
	if o.UnitInterval != 0 {
		c.UnitInterval = o.UnitInterval
	}
	c.SkipThreads = c.SkipThreads || o.SkipThreads
	c.SkipUnits = c.SkipUnits || o.SkipUnits
}

func envError(key, value string, err error) error {
	return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid environment override", err,
		map[string]any{"variable": key, "value": value})
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"NINV_PROC_ROOT": &c.ProcRoot,
		"NINV_BUS":       &c.Bus,
		"NINV_SORT":      &c.SortKey,
		"NINV_SEARCH":    &c.Search,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"NINV_SKIP_THREADS": &c.SkipThreads,
		"NINV_SKIP_UNITS":   &c.SkipUnits,
	}
	for key, dst := range bools {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return envError(key, v, err)
			}
			*dst = b
		}
	}

	durations := map[string]*time.Duration{
		"NINV_CPU_INTERVAL":     &c.CPUInterval,
		"NINV_PROCESS_INTERVAL": &c.ProcessInterval,
		"NINV_UNIT_INTERVAL":    &c.UnitInterval,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return envError(key, v, err)
			}
			*dst = d
		}
	}

	if v := os.Getenv("NINV_UNIT_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("NINV_UNIT_CONCURRENCY", v, err)
		}
		c.UnitConcurrency = n
	}

	return nil
}

// Validate checks every field and returns the first problem found as an
// INVALID_REQUEST error.
func (c Config) Validate() error {
	if c.ProcRoot == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "procRoot cannot be empty")
	}
	if _, err := systemd.ParseBusKind(c.Bus); err != nil {
		return err
	}
	if c.UnitConcurrency < 1 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "unitConcurrency must be at least 1",
			map[string]any{"unitConcurrency": c.UnitConcurrency})
	}
	if _, err := model.ParseSortKey(c.SortKey); err != nil {
		return err
	}
	if _, err := model.NewMatcher(c.Search); err != nil {
		return err
	}
	intervals := []struct {
		field string
		value time.Duration
	}{
		{"cpuInterval", c.CPUInterval},
		{"processInterval", c.ProcessInterval},
		{"unitInterval", c.UnitInterval},
	}
	for _, iv := range intervals {
		if iv.value <= 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "interval must be positive",
				map[string]any{"field": iv.field, "value": iv.value.String()})
		}
	}
	return nil
}
