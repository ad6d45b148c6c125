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
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NVIDIA/node-inventory/pkg/collector"
	"github.com/NVIDIA/node-inventory/pkg/collector/cpu"
	"github.com/NVIDIA/node-inventory/pkg/collector/systemd"
	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"github.com/NVIDIA/node-inventory/pkg/errors"
	"github.com/NVIDIA/node-inventory/pkg/inventory"
	"github.com/NVIDIA/node-inventory/pkg/process"
	"golang.org/x/sync/errgroup"
)

// Monitor publishes the process, CPU and unit inventories.
type Monitor struct {
	cfg   Config
	cpus  collector.Collector[cpu.CoreRecord]
	units collector.UnitClient
	now   func() time.Time

	// procMu serializes process refreshes and guards procs.
	procMu sync.RWMutex
	procs  *inventory.State

	cpuMu    sync.RWMutex
	cores    []cpu.CoreRecord
	coresAt  time.Time
	cpuErr   error
	cpuValid bool

	unitMu     sync.RWMutex
	unitList   []systemd.UnitRecord
	unitsAt    time.Time
	unitErr    error
	unitsValid bool
	unitBusy   atomic.Bool
}

// Option configures a Monitor.
type Option func(*options)

type options struct {
	factory collector.Factory
	now     func() time.Time
}

// WithFactory replaces the collector factory built from the Config.
func WithFactory(f collector.Factory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// WithClock sets the time source used for collection timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New validates cfg and creates a Monitor with empty inventories.
func New(cfg Config, opts ...Option) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key, _ := process.ParseSortKey(cfg.SortKey)
	matcher, _ := process.NewMatcher(cfg.Search)
	bus, _ := systemd.ParseBusKind(cfg.Bus)

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.factory == nil {
		o.factory = collector.NewDefaultFactory(
			collector.WithProcRoot(cfg.ProcRoot),
			collector.WithThreads(!cfg.SkipThreads),
			collector.WithBusKind(bus),
			collector.WithUnitConcurrency(cfg.UnitConcurrency),
		)
	}

	m := &Monitor{
		cfg:  cfg,
		cpus: o.factory.CreateCPUCollector(),
		now:  o.now,
		procs: inventory.NewState(o.factory.CreateProcessCollector(),
			inventory.WithSortKey(key),
			inventory.WithMatcher(matcher)),
	}
	if !cfg.SkipUnits {
		m.units = o.factory.CreateUnitClient()
	}
	return m, nil
}

// Config returns the configuration the monitor was created with.
func (m *Monitor) Config() Config {
	return m.cfg
}

// RefreshProcesses re-collects the process inventory.
func (m *Monitor) RefreshProcesses(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
	defer cancel()

	m.procMu.Lock()
	defer m.procMu.Unlock()

	return m.procs.Refresh(ctx)
}

// RefreshCPUs re-reads the CPU inventory. A failure is remembered and
// returned by CPUs until the next success.
func (m *Monitor) RefreshCPUs(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
	defer cancel()

	cores, err := m.cpus.Collect(ctx)

	m.cpuMu.Lock()
	defer m.cpuMu.Unlock()
	m.cpuErr = err
	if err != nil {
		return err
	}
	m.cores = cores
	m.coresAt = m.now()
	m.cpuValid = true
	return nil
}

// RefreshUnits re-queries the unit inventory. It returns nil without doing
// anything when another unit refresh is in flight.
func (m *Monitor) RefreshUnits(ctx context.Context) error {
	if m.units == nil {
		return errUnitsDisabled()
	}
	if !m.unitBusy.CompareAndSwap(false, true) {
		unitRefreshSkipped.Inc()
		slog.Debug("unit refresh already in flight, skipping")
		return nil
	}
	defer m.unitBusy.Store(false)

	ctx, cancel := context.WithTimeout(ctx, defaults.UnitRefreshTimeout)
	defer cancel()

	units, err := m.units.Refresh(ctx)

	m.unitMu.Lock()
	defer m.unitMu.Unlock()
	m.unitErr = err
	if err != nil {
		return err
	}
	m.unitList = units
	m.unitsAt = m.now()
	m.unitsValid = true
	return nil
}

func errUnitsDisabled() error {
	return errors.New(errors.ErrCodeUnavailable, "unit inventory is disabled")
}

// Query selects and shapes a process view. Zero values select the
// configured defaults.
type Query struct {
	Tree bool
	// Search replaces the configured pattern when non-nil; a pointer to ""
	// disables filtering.
	Search  *string
	SortKey process.SortKey
}

// Processes returns a copy of the requested process view. An invalid search
// pattern or sort key yields INVALID_REQUEST.
func (m *Monitor) Processes(q Query) (ProcessList, error) {
	m.procMu.RLock()
	v := m.procs.View()
	m.procMu.RUnlock()

	key, pattern := v.SortKey, v.SearchPattern
	if q.SortKey != "" {
		if !q.SortKey.Valid() {
			return ProcessList{}, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unsupported sort key",
				map[string]any{"key": string(q.SortKey), "supported": process.SortKeys()})
		}
		key = q.SortKey
	}
	if q.Search != nil {
		pattern = *q.Search
	}

	out := ProcessList{
		Generation:    v.Generation,
		CollectedAt:   v.CollectedAt,
		View:          ViewFlat,
		SortKey:       key,
		SearchPattern: pattern,
	}

	base, precomputed := v.Flat, v.FilteredFlat
	if q.Tree {
		out.View = ViewTree
		base, precomputed = v.Forest, v.FilteredForest
	}

	if key == v.SortKey && pattern == v.SearchPattern {
		out.Records = precomputed
	} else {
		filtered, err := process.Filter(base, pattern)
		if err != nil {
			return ProcessList{}, err
		}
		out.Records = process.Sort(filtered, key)
	}
	out.Count = process.Count(out.Records)
	return out, nil
}

// Ready returns nil once the process inventory has been collected.
func (m *Monitor) Ready() error {
	m.procMu.RLock()
	defer m.procMu.RUnlock()
	if m.procs.Generation() == 0 {
		return errors.New(errors.ErrCodeUnavailable, "process inventory not collected yet")
	}
	return nil
}

// CPUs returns the last CPU inventory, or the refresh error when the most
// recent refresh failed.
func (m *Monitor) CPUs() (CPUList, error) {
	m.cpuMu.RLock()
	defer m.cpuMu.RUnlock()

	if m.cpuErr != nil {
		return CPUList{}, m.cpuErr
	}
	if !m.cpuValid {
		return CPUList{}, errors.New(errors.ErrCodeUnavailable, "cpu inventory not collected yet")
	}
	return CPUList{
		CollectedAt: m.coresAt,
		Count:       len(m.cores),
		Cores:       slices.Clone(m.cores),
	}, nil
}

// Units returns the last successful unit inventory. A later failed refresh
// is reported in LastError without discarding the list; if no refresh ever
// succeeded the last error is returned instead.
func (m *Monitor) Units() (UnitList, error) {
	if m.units == nil {
		return UnitList{}, errUnitsDisabled()
	}

	m.unitMu.RLock()
	defer m.unitMu.RUnlock()

	if !m.unitsValid {
		if m.unitErr != nil {
			return UnitList{}, m.unitErr
		}
		return UnitList{}, errors.New(errors.ErrCodeUnavailable, "unit inventory not collected yet")
	}

	out := UnitList{
		CollectedAt: m.unitsAt,
		Bus:         m.cfg.Bus,
		Count:       len(m.unitList),
		Units:       slices.Clone(m.unitList),
	}
	if m.unitErr != nil {
		out.LastError = m.unitErr.Error()
	}
	return out, nil
}

// UnitProperties returns the filtered property map of one unit.
func (m *Monitor) UnitProperties(ctx context.Context, unit string) (map[string]any, error) {
	if m.units == nil {
		return nil, errUnitsDisabled()
	}
	ctx, cancel := context.WithTimeout(ctx, defaults.UnitRefreshTimeout)
	defer cancel()
	return m.units.Properties(ctx, unit)
}

// Run refreshes every source immediately and then on its interval until
// ctx is done. Refresh failures are logged and counted, never returned.
func (m *Monitor) Run(ctx context.Context) error {
	slog.Info("monitor starting",
		"procRoot", m.cfg.ProcRoot,
		"cpuInterval", m.cfg.CPUInterval,
		"processInterval", m.cfg.ProcessInterval,
		"unitInterval", m.cfg.UnitInterval,
		"units", m.units != nil)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m.loop(gctx, "cpus", m.cfg.CPUInterval, m.RefreshCPUs)
		return nil
	})
	g.Go(func() error {
		m.loop(gctx, "processes", m.cfg.ProcessInterval, m.RefreshProcesses)
		return nil
	})
	if m.units != nil {
		g.Go(func() error {
			m.unitLoop(gctx)
			return nil
		})
	}

	err := g.Wait()
	slog.Info("monitor stopped")
	return err
}

func (m *Monitor) loop(ctx context.Context, source string, interval time.Duration, refresh func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.runRefresh(ctx, source, refresh)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// unitLoop starts each unit refresh in its own goroutine so a slow bus
// cannot delay the ticker; RefreshUnits drops overlapping ticks.
func (m *Monitor) unitLoop(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.UnitInterval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		wg.Go(func() {
			m.runRefresh(ctx, "units", m.RefreshUnits)
		})
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) runRefresh(ctx context.Context, source string, refresh func(context.Context) error) {
	if ctx.Err() != nil {
		return
	}
	if err := refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		refreshErrors.WithLabelValues(source).Inc()
		slog.Warn("refresh failed", "source", source, "error", err)
		return
	}
	lastRefresh.WithLabelValues(source).SetToCurrentTime()
}

// Close releases the unit client's bus connection.
func (m *Monitor) Close() error {
	if m.units == nil {
		return nil
	}
	return m.units.Close()
}
