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
	stderrors "errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/NVIDIA/node-inventory/pkg/collector/file"
	"github.com/NVIDIA/node-inventory/pkg/errors"
)

const (
	labelProcessor = "processor"
	labelModelName = "model name"
	labelFrequency = "cpu MHz"
	labelCacheSize = "cache size"

	// cpuinfo grows with the core count; a few KB per core.
	maxCPUInfoSize = 8 << 20
)

// DefaultRoot is the procfs mount point used when none is configured.
const DefaultRoot = "/proc"

// CoreRecord is one logical core.
type CoreRecord struct {
	ModelName string `json:"modelName" yaml:"modelName"`
	Index     int    `json:"index" yaml:"index"`

	// FrequencyMHz is kept as reported; it is not always a plain number.
	FrequencyMHz string `json:"frequencyMHz,omitempty" yaml:"frequencyMHz,omitempty"`
	CacheSize    string `json:"cacheSize,omitempty" yaml:"cacheSize,omitempty"`
}

var (
	errNoIndex = errors.New(errors.ErrCodeMalformedRecord, "block has no processor label")

	lineParser  = file.NewParser()
	blockParser = file.NewParser(file.WithDelimiter("\n\n"), file.WithMaxSize(maxCPUInfoSize))
)

// ParseCoreRecord parses one cpuinfo block. The block must carry a
// non-negative integer "processor" label.
func ParseCoreRecord(raw string) (CoreRecord, error) {
	var rec CoreRecord
	seenIndex := false

	for _, line := range lineParser.Split(raw) {
		label, value, ok := file.SplitLabel(line)
		if !ok {
			continue
		}

		switch label {
		case labelProcessor:
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return CoreRecord{}, errors.NewWithContext(errors.ErrCodeMalformedRecord,
					"processor index is not a non-negative integer",
					map[string]any{"value": value})
			}
			rec.Index = n
			seenIndex = true
		case labelModelName:
			rec.ModelName = value
		case labelFrequency:
			rec.FrequencyMHz = value
		case labelCacheSize:
			rec.CacheSize = value
		}
	}

	if !seenIndex {
		return CoreRecord{}, errNoIndex
	}

	return rec, nil
}

// ParseCPUInfo splits a cpuinfo blob into blocks and parses each one, in
// source order. Blocks without a processor label (platform summaries such as
// the trailing "Hardware" block on arm) are skipped; blocks with a malformed
// index are skipped with a warning.
func ParseCPUInfo(blob string) []CoreRecord {
	return parseBlocks(blockParser.Split(blob))
}

func parseBlocks(blocks []string) []CoreRecord {
	cores := make([]CoreRecord, 0, len(blocks))
	for _, block := range blocks {
		rec, err := ParseCoreRecord(block)
		if err != nil {
			if stderrors.Is(err, errNoIndex) {
				slog.Debug("skipping cpuinfo block without processor index")
			} else {
				slog.Warn("skipping malformed cpuinfo block", slog.String("error", err.Error()))
			}
			continue
		}
		cores = append(cores, rec)
	}
	return cores
}

// Collector reads cpuinfo from a procfs root.
type Collector struct {
	root string
}

// Option configures a Collector.
type Option func(*Collector)

// WithRoot sets the procfs root.
func WithRoot(root string) Option {
	return func(c *Collector) {
		if root != "" {
			c.root = root
		}
	}
}

// NewCollector creates a collector reading DefaultRoot.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{root: DefaultRoot}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect returns one record per logical core in source order.
func (c *Collector) Collect(ctx context.Context) ([]CoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(c.root, "cpuinfo")
	blocks, err := blockParser.GetLines(path)
	if err != nil {
		code := errors.ErrCodeInternal
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrCodeNotFound
		}
		return nil, errors.WrapWithContext(code, "failed to read cpuinfo", err, map[string]any{"path": path})
	}

	cores := parseBlocks(blocks)
	slog.Debug("collected cpu records", slog.Int("cores", len(cores)))

	return cores, nil
}
