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
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/node-inventory/pkg/collector/cpu"
	"github.com/NVIDIA/node-inventory/pkg/collector/systemd"
	"github.com/NVIDIA/node-inventory/pkg/process"
)

// ViewFlat and ViewTree select the process list shape.
const (
	ViewFlat = "flat"
	ViewTree = "tree"
)

// ProcessList is one process view as served to readers.
type ProcessList struct {
	Generation    uint64           `json:"generation" yaml:"generation"`
	CollectedAt   time.Time        `json:"collectedAt" yaml:"collectedAt"`
	View          string           `json:"view" yaml:"view"`
	SortKey       process.SortKey  `json:"sortKey" yaml:"sortKey"`
	SearchPattern string           `json:"searchPattern,omitempty" yaml:"searchPattern,omitempty"`
	Count         int              `json:"count" yaml:"count"`
	Records       []process.Record `json:"records" yaml:"records"`
}

// TableHeader implements serializer.Table.
func (l ProcessList) TableHeader() []string {
	return []string{"PID", "PPID", "THREADS", "NAME", "COMMAND"}
}

// TableRows implements serializer.Table. Tree views indent names by depth.
func (l ProcessList) TableRows() [][]string {
	rows := make([][]string, 0, l.Count)
	process.Walk(l.Records, func(r process.Record, depth int) bool {
		name := r.Name
		if r.Thread {
			name = "{" + name + "}"
		}
		rows = append(rows, []string{
			strconv.Itoa(r.PID),
			strconv.Itoa(r.ParentPID),
			strconv.Itoa(r.Threads),
			strings.Repeat("  ", depth) + name,
			r.CommandLineOrEmpty(),
		})
		return true
	})
	return rows
}

// CPUList is the last CPU inventory.
type CPUList struct {
	CollectedAt time.Time        `json:"collectedAt" yaml:"collectedAt"`
	Count       int              `json:"count" yaml:"count"`
	Cores       []cpu.CoreRecord `json:"cores" yaml:"cores"`
}

// TableHeader implements serializer.Table.
func (l CPUList) TableHeader() []string {
	return []string{"INDEX", "MODEL", "MHZ", "CACHE"}
}

// TableRows implements serializer.Table.
func (l CPUList) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Cores))
	for _, c := range l.Cores {
		rows = append(rows, []string{strconv.Itoa(c.Index), c.ModelName, c.FrequencyMHz, c.CacheSize})
	}
	return rows
}

// UnitList is the last successful unit inventory. LastError is set when
// later refreshes failed and the list is stale.
type UnitList struct {
	CollectedAt time.Time            `json:"collectedAt" yaml:"collectedAt"`
	Bus         string               `json:"bus" yaml:"bus"`
	Count       int                  `json:"count" yaml:"count"`
	LastError   string               `json:"lastError,omitempty" yaml:"lastError,omitempty"`
	Units       []systemd.UnitRecord `json:"units" yaml:"units"`
}

// TableHeader implements serializer.Table.
func (l UnitList) TableHeader() []string {
	return []string{"ID", "NODE", "CAN FREEZE", "COLLECT MODE"}
}

// TableRows implements serializer.Table.
func (l UnitList) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Units))
	for _, u := range l.Units {
		rows = append(rows, []string{u.ID, u.Name, strconv.FormatBool(u.CanFreeze), u.CollectMode})
	}
	return rows
}
