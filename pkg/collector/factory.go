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

package collector

import (
	"context"

	"github.com/NVIDIA/node-inventory/pkg/collector/cpu"
	"github.com/NVIDIA/node-inventory/pkg/collector/process"
	"github.com/NVIDIA/node-inventory/pkg/collector/systemd"
	"github.com/NVIDIA/node-inventory/pkg/defaults"
	model "github.com/NVIDIA/node-inventory/pkg/process"
)

// Collector gathers a flat list of records from one source.
type Collector[T any] interface {
	Collect(ctx context.Context) ([]T, error)
}

// UnitClient reads systemd units.
type UnitClient interface {
	Refresh(ctx context.Context) ([]systemd.UnitRecord, error)
	Units() []systemd.UnitRecord
	Properties(ctx context.Context, unit string) (map[string]any, error)
	Close() error
}

// Factory creates collectors with their dependencies.
type Factory interface {
	CreateProcessCollector() Collector[model.Record]
	CreateCPUCollector() Collector[cpu.CoreRecord]
	CreateUnitClient() UnitClient
}

// Option is a functional option for configuring DefaultFactory.
type Option func(*DefaultFactory)

// WithProcRoot sets the procfs root read by the process and CPU collectors.
func WithProcRoot(root string) Option {
	return func(f *DefaultFactory) {
		f.ProcRoot = root
	}
}

// WithThreads sets whether thread records are collected.
func WithThreads(enabled bool) Option {
	return func(f *DefaultFactory) {
		f.Threads = enabled
	}
}

// WithBusKind selects the bus the unit client dials.
func WithBusKind(kind systemd.BusKind) Option {
	return func(f *DefaultFactory) {
		f.Bus = kind
	}
}

// WithUnitConcurrency bounds concurrent unit property reads.
func WithUnitConcurrency(n int) Option {
	return func(f *DefaultFactory) {
		f.UnitConcurrency = n
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	ProcRoot        string
	Threads         bool
	Bus             systemd.BusKind
	UnitConcurrency int
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		ProcRoot:        process.DefaultRoot,
		Threads:         true,
		Bus:             systemd.BusSystem,
		UnitConcurrency: defaults.UnitReadConcurrency,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateProcessCollector creates a procfs process collector.
func (f *DefaultFactory) CreateProcessCollector() Collector[model.Record] {
	return process.NewCollector(
		process.WithRoot(f.ProcRoot),
		process.WithThreads(f.Threads),
	)
}

// CreateCPUCollector creates a cpuinfo collector.
func (f *DefaultFactory) CreateCPUCollector() Collector[cpu.CoreRecord] {
	return cpu.NewCollector(cpu.WithRoot(f.ProcRoot))
}

// CreateUnitClient creates a disconnected systemd unit client.
func (f *DefaultFactory) CreateUnitClient() UnitClient {
	return systemd.NewClient(
		systemd.WithBusKind(f.Bus),
		systemd.WithConcurrency(f.UnitConcurrency),
	)
}
