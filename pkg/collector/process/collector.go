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

package process

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/procfs"

	"github.com/NVIDIA/node-inventory/pkg/process"
)

// DefaultRoot is the procfs mount point used when none is configured.
const DefaultRoot = procfs.DefaultMountPoint

// Collector scans procfs for process and thread records.
type Collector struct {
	root    string
	threads bool
}

// Option configures a Collector.
type Option func(*Collector)

// WithRoot sets the procfs root. Tests point it at a fixture tree.
func WithRoot(root string) Option {
	return func(c *Collector) {
		if root != "" {
			c.root = root
		}
	}
}

// WithThreads sets whether task/<tid> entries are collected. Default is true.
func WithThreads(enabled bool) Option {
	return func(c *Collector) {
		c.threads = enabled
	}
}

// NewCollector creates a collector reading DefaultRoot with threads enabled.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		root:    DefaultRoot,
		threads: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the procfs root the collector reads.
func (c *Collector) Root() string {
	return c.root
}

// Collect returns a flat list of every readable process and, when enabled,
// every thread other than the main thread. See the package documentation for
// the failure policy.
func (c *Collector) Collect(ctx context.Context) ([]process.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		collectDuration.Observe(time.Since(start).Seconds())
	}()

	fs, err := procfs.NewFS(c.root)
	if err != nil {
		slog.Warn("procfs root is not readable", slog.String("root", c.root), slog.String("error", err.Error()))
		return []process.Record{}, nil
	}

	procs, err := fs.AllProcs()
	if err != nil {
		slog.Warn("failed to list processes", slog.String("root", c.root), slog.String("error", err.Error()))
		return []process.Record{}, nil
	}

	records := make([]process.Record, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := filepath.Join(c.root, strconv.Itoa(p.PID))
		rec, ok := c.readRecord(dir, p.PID)
		if !ok {
			continue
		}
		records = append(records, rec)

		if c.threads {
			records = append(records, c.collectThreads(fs, p.PID)...)
		}
	}

	slog.Debug("collected process records",
		slog.String("root", c.root),
		slog.Int("processes", len(procs)),
		slog.Int("records", len(records)))

	return records, nil
}

func (c *Collector) collectThreads(fs procfs.FS, pid int) []process.Record {
	tasks, err := fs.AllThreads(pid)
	if err != nil {
		// the process exited or exposes no task directory
		slog.Debug("no threads listed", slog.Int("pid", pid), slog.String("error", err.Error()))
		return nil
	}

	out := make([]process.Record, 0, len(tasks))
	for _, t := range tasks {
		if t.PID == pid {
			continue
		}

		dir := filepath.Join(c.root, strconv.Itoa(pid), "task", strconv.Itoa(t.PID))
		rec, ok := c.readRecord(dir, t.PID)
		if !ok {
			continue
		}
		rec.ParentPID = pid
		rec.Thread = true
		out = append(out, rec)
	}
	return out
}

// readRecord parses dir/status and dir/cmdline. ok is false when the record
// was skipped.
func (c *Collector) readRecord(dir string, id int) (process.Record, bool) {
	raw, err := os.ReadFile(filepath.Join(dir, "status"))
	if err != nil {
		recordsSkipped.WithLabelValues(skipReasonVanished).Inc()
		slog.Debug("skipping vanished entry", slog.Int("id", id), slog.String("error", err.Error()))
		return process.Record{}, false
	}

	rec, err := process.ParseRecord(string(raw))
	if err != nil {
		recordsSkipped.WithLabelValues(skipReasonMalformed).Inc()
		slog.Warn("skipping malformed status record",
			slog.Int("id", id),
			slog.String("path", dir),
			slog.String("error", err.Error()))
		return process.Record{}, false
	}

	if cmd, err := os.ReadFile(filepath.Join(dir, "cmdline")); err == nil {
		line := process.ParseCommandLine(cmd)
		rec.CommandLine = &line
	}

	return rec, true
}
