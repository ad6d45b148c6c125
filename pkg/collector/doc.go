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

// Package collector wires the inventory's data sources.
//
// # Overview
//
// Each data source lives in its own subpackage and returns a flat list of
// typed records:
//   - collector/process - process and thread records from procfs
//   - collector/cpu - one record per logical core from /proc/cpuinfo
//   - collector/systemd - systemd units over D-Bus
//   - collector/file - the line and block splitter the procfs readers share
//
// # Core Interfaces
//
//	type Collector[T any] interface {
//	    Collect(ctx context.Context) ([]T, error)
//	}
//
//	type UnitClient interface {
//	    Refresh(ctx context.Context) ([]systemd.UnitRecord, error)
//	    Units() []systemd.UnitRecord
//	    Properties(ctx context.Context, unit string) (map[string]any, error)
//	    Close() error
//	}
//
// # Factory Pattern
//
// The Factory interface abstracts collector creation so the inventory state,
// the daemon and the snapshotter can be tested with fakes:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithProcRoot("/host/proc"),
//	    collector.WithBusKind(systemd.BusSystem),
//	)
//	procs, err := factory.CreateProcessCollector().Collect(ctx)
//
// Collectors honor context cancellation. The unit client holds a bus
// connection and must be closed by its owner.
package collector
