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
	"testing"

	"github.com/NVIDIA/node-inventory/pkg/collector/cpu"
	"github.com/NVIDIA/node-inventory/pkg/collector/process"
	"github.com/NVIDIA/node-inventory/pkg/collector/systemd"
	"github.com/NVIDIA/node-inventory/pkg/defaults"
)

func TestNewDefaultFactory_Defaults(t *testing.T) {
	factory := NewDefaultFactory()

	if factory.ProcRoot != "/proc" {
		t.Errorf("expected /proc, got %s", factory.ProcRoot)
	}
	if !factory.Threads {
		t.Error("expected threads enabled by default")
	}
	if factory.Bus != systemd.BusSystem {
		t.Errorf("expected system bus, got %s", factory.Bus)
	}
	if factory.UnitConcurrency != defaults.UnitReadConcurrency {
		t.Errorf("expected concurrency %d, got %d", defaults.UnitReadConcurrency, factory.UnitConcurrency)
	}
}

func TestDefaultFactory_Options(t *testing.T) {
	factory := NewDefaultFactory(
		WithProcRoot("/host/proc"),
		WithThreads(false),
		WithBusKind(systemd.BusSession),
		WithUnitConcurrency(2),
	)

	if factory.ProcRoot != "/host/proc" {
		t.Errorf("expected /host/proc, got %s", factory.ProcRoot)
	}
	if factory.Threads {
		t.Error("expected threads disabled")
	}
	if factory.Bus != systemd.BusSession {
		t.Errorf("expected session bus, got %s", factory.Bus)
	}
	if factory.UnitConcurrency != 2 {
		t.Errorf("expected concurrency 2, got %d", factory.UnitConcurrency)
	}
}

func TestDefaultFactory_CreateProcessCollector(t *testing.T) {
	factory := NewDefaultFactory(WithProcRoot("/host/proc"))

	col := factory.CreateProcessCollector()
	pc, ok := col.(*process.Collector)
	if !ok {
		t.Fatalf("expected *process.Collector, got %T", col)
	}
	if pc.Root() != "/host/proc" {
		t.Errorf("expected /host/proc, got %s", pc.Root())
	}
}

func TestDefaultFactory_CreateCPUCollector(t *testing.T) {
	col := NewDefaultFactory().CreateCPUCollector()
	if _, ok := col.(*cpu.Collector); !ok {
		t.Fatalf("expected *cpu.Collector, got %T", col)
	}
}

func TestDefaultFactory_CreateUnitClient(t *testing.T) {
	client := NewDefaultFactory().CreateUnitClient()
	sc, ok := client.(*systemd.Client)
	if !ok {
		t.Fatalf("expected *systemd.Client, got %T", client)
	}
	if sc.State() != systemd.Disconnected {
		t.Errorf("expected a disconnected client, got %s", sc.State())
	}
}
