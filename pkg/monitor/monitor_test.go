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
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/node-inventory/pkg/collector"
	"github.com/NVIDIA/node-inventory/pkg/collector/cpu"
	"github.com/NVIDIA/node-inventory/pkg/collector/systemd"
	"github.com/NVIDIA/node-inventory/pkg/errors"
	"github.com/NVIDIA/node-inventory/pkg/process"
)

type fakeProcs struct {
	records []process.Record
	err     error
}

func (f *fakeProcs) Collect(context.Context) ([]process.Record, error) {
	return f.records, f.err
}

type fakeCPUs struct {
	mu    sync.Mutex
	cores []cpu.CoreRecord
	err   error
}

func (f *fakeCPUs) Collect(context.Context) ([]cpu.CoreRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cores, f.err
}

func (f *fakeCPUs) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeUnits struct {
	mu      sync.Mutex
	units   []systemd.UnitRecord
	err     error
	block   chan struct{}
	calls   atomic.Int32
	closed  bool
	props   map[string]any
	lastArg string
}

func (f *fakeUnits) Refresh(context.Context) ([]systemd.UnitRecord, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.units, f.err
}

func (f *fakeUnits) Units() []systemd.UnitRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.units
}

func (f *fakeUnits) Properties(_ context.Context, unit string) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastArg = unit
	return f.props, nil
}

func (f *fakeUnits) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeUnits) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeFactory struct {
	procs *fakeProcs
	cpus  *fakeCPUs
	units *fakeUnits
}

func (f *fakeFactory) CreateProcessCollector() collector.Collector[process.Record] { return f.procs }
func (f *fakeFactory) CreateCPUCollector() collector.Collector[cpu.CoreRecord]     { return f.cpus }
func (f *fakeFactory) CreateUnitClient() collector.UnitClient                      { return f.units }

func strptr(s string) *string { return &s }

func newFactory() *fakeFactory {
	return &fakeFactory{
		procs: &fakeProcs{records: []process.Record{
			{Name: "systemd", PID: 1, Threads: 1, CommandLine: strptr("/sbin/init")},
			{Name: "sshd", PID: 10, ParentPID: 1, Threads: 2, CommandLine: strptr("/usr/sbin/sshd -D")},
			{Name: "bash", PID: 11, ParentPID: 10, Threads: 1, CommandLine: strptr("-bash")},
			{Name: "cron", PID: 20, ParentPID: 1, Threads: 1},
		}},
		cpus: &fakeCPUs{cores: []cpu.CoreRecord{
			{ModelName: "Grace", Index: 0, FrequencyMHz: "3400.000"},
			{ModelName: "Grace", Index: 1, FrequencyMHz: "3400.000"},
		}},
		units: &fakeUnits{
			units: []systemd.UnitRecord{
				{Name: "ssh_2eservice", ID: "ssh.service", CollectMode: "inactive"},
			},
			props: map[string]any{"ActiveState": "active"},
		},
	}
}

func newMonitor(t *testing.T, f *fakeFactory, mutate ...func(*Config)) *Monitor {
	t.Helper()
	cfg := DefaultConfig()
	for _, fn := range mutate {
		fn(&cfg)
	}
	m, err := New(cfg, WithFactory(f))
	require.NoError(t, err)
	return m
}

func pidsOf(records []process.Record) []int {
	var out []int
	process.Walk(records, func(r process.Record, _ int) bool {
		out = append(out, r.PID)
		return true
	})
	return out
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SortKey = "memory"
	_, err := New(cfg, WithFactory(newFactory()))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestReady(t *testing.T) {
	m := newMonitor(t, newFactory())

	err := m.Ready()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnavailable))

	require.NoError(t, m.RefreshProcesses(context.Background()))
	assert.NoError(t, m.Ready())
}

func TestProcesses(t *testing.T) {
	m := newMonitor(t, newFactory())
	require.NoError(t, m.RefreshProcesses(context.Background()))

	tests := []struct {
		name  string
		query Query
		view  string
		pids  []int
	}{
		{name: "default flat", query: Query{}, view: ViewFlat, pids: []int{1, 10, 11, 20}},
		{name: "flat by name", query: Query{SortKey: process.SortByName}, view: ViewFlat, pids: []int{11, 20, 10, 1}},
		{name: "tree", query: Query{Tree: true}, view: ViewTree, pids: []int{1, 10, 11, 20}},
		{name: "flat search", query: Query{Search: strptr("bash")}, view: ViewFlat, pids: []int{11}},
		{name: "tree search keeps ancestors", query: Query{Tree: true, Search: strptr("bash")}, view: ViewTree, pids: []int{1, 10, 11}},
		{name: "no match", query: Query{Search: strptr("nginx")}, view: ViewFlat, pids: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := m.Processes(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.view, list.View)
			assert.Equal(t, tt.pids, pidsOf(list.Records))
			assert.Equal(t, len(tt.pids), list.Count)
			assert.Equal(t, uint64(1), list.Generation)
		})
	}
}

func TestProcessesUsesConfiguredDefaults(t *testing.T) {
	m := newMonitor(t, newFactory(), func(c *Config) {
		c.Search = "sshd"
		c.SortKey = "threads"
	})
	require.NoError(t, m.RefreshProcesses(context.Background()))

	list, err := m.Processes(Query{})
	require.NoError(t, err)
	assert.Equal(t, "sshd", list.SearchPattern)
	assert.Equal(t, process.SortByThreads, list.SortKey)
	assert.Equal(t, []int{10}, pidsOf(list.Records))

	// an explicit empty pattern disables the configured one
	list, err = m.Processes(Query{Search: strptr("")})
	require.NoError(t, err)
	assert.Len(t, list.Records, 4)
}

func TestProcessesInvalidQuery(t *testing.T) {
	m := newMonitor(t, newFactory())
	require.NoError(t, m.RefreshProcesses(context.Background()))

	_, err := m.Processes(Query{Search: strptr("([")})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	_, err = m.Processes(Query{SortKey: "rss"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestProcessesReturnsCopies(t *testing.T) {
	m := newMonitor(t, newFactory())
	require.NoError(t, m.RefreshProcesses(context.Background()))

	list, err := m.Processes(Query{Tree: true})
	require.NoError(t, err)
	list.Records[0].Name = "mutated"
	list.Records[0].Children = nil

	again, err := m.Processes(Query{Tree: true})
	require.NoError(t, err)
	assert.Equal(t, "systemd", again.Records[0].Name)
	assert.NotEmpty(t, again.Records[0].Children)
}

func TestCPUs(t *testing.T) {
	f := newFactory()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m, err := New(DefaultConfig(), WithFactory(f), WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	_, err = m.CPUs()
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnavailable))

	require.NoError(t, m.RefreshCPUs(context.Background()))
	list, err := m.CPUs()
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, now, list.CollectedAt)

	f.cpus.setErr(errors.New(errors.ErrCodeMalformedRecord, "bad cpuinfo"))
	require.Error(t, m.RefreshCPUs(context.Background()))
	_, err = m.CPUs()
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedRecord))
}

func TestUnits(t *testing.T) {
	f := newFactory()
	m := newMonitor(t, f)

	_, err := m.Units()
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnavailable))

	require.NoError(t, m.RefreshUnits(context.Background()))
	list, err := m.Units()
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "system", list.Bus)
	assert.Empty(t, list.LastError)

	// a failed refresh keeps the previous list and reports the error
	f.units.setErr(errors.New(errors.ErrCodeTransport, "bus went away"))
	require.Error(t, m.RefreshUnits(context.Background()))
	list, err = m.Units()
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Contains(t, list.LastError, "bus went away")
}

func TestUnitsFirstRefreshFails(t *testing.T) {
	f := newFactory()
	f.units.err = errors.New(errors.ErrCodeFormat, "bad introspection document")
	m := newMonitor(t, f)

	require.Error(t, m.RefreshUnits(context.Background()))
	_, err := m.Units()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFormat))
}

func TestUnitsDisabled(t *testing.T) {
	f := newFactory()
	m := newMonitor(t, f, func(c *Config) { c.SkipUnits = true })

	for name, err := range map[string]error{
		"refresh": m.RefreshUnits(context.Background()),
		"units": func() error {
			_, err := m.Units()
			return err
		}(),
		"properties": func() error {
			_, err := m.UnitProperties(context.Background(), "ssh.service")
			return err
		}(),
	} {
		assert.True(t, errors.IsCode(err, errors.ErrCodeUnavailable), name)
	}
	assert.NoError(t, m.Close())
	assert.False(t, f.units.closed)
}

func TestUnitProperties(t *testing.T) {
	f := newFactory()
	m := newMonitor(t, f)

	props, err := m.UnitProperties(context.Background(), "ssh.service")
	require.NoError(t, err)
	assert.Equal(t, "active", props["ActiveState"])
	assert.Equal(t, "ssh.service", f.units.lastArg)
}

func TestRefreshUnitsSkipsWhenBusy(t *testing.T) {
	f := newFactory()
	f.units.block = make(chan struct{})
	m := newMonitor(t, f)

	done := make(chan error, 1)
	go func() { done <- m.RefreshUnits(context.Background()) }()

	require.Eventually(t, func() bool { return f.units.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// overlapping refresh returns immediately without calling the client
	assert.NoError(t, m.RefreshUnits(context.Background()))
	assert.Equal(t, int32(1), f.units.calls.Load())

	close(f.units.block)
	require.NoError(t, <-done)
}

func TestRun(t *testing.T) {
	f := newFactory()
	m := newMonitor(t, f, func(c *Config) {
		c.CPUInterval = 10 * time.Millisecond
		c.ProcessInterval = 10 * time.Millisecond
		c.UnitInterval = 10 * time.Millisecond
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool {
		if m.Ready() != nil {
			return false
		}
		if _, err := m.CPUs(); err != nil {
			return false
		}
		_, err := m.Units()
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		list, err := m.Processes(Query{})
		return err == nil && list.Generation > 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	require.NoError(t, m.Close())
	assert.True(t, f.units.closed)
}
