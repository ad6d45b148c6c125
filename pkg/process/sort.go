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
	"cmp"
	"slices"
	"strings"

	"github.com/NVIDIA/node-inventory/pkg/errors"
)

// SortKey selects the field records are ordered by.
type SortKey string

const (
	SortByName        SortKey = "name"
	SortByPID         SortKey = "pid"
	SortByParentPID   SortKey = "ppid"
	SortByThreads     SortKey = "threads"
	SortByCommandLine SortKey = "cmdline"
)

// DefaultSortKey is used when no key is configured.
const DefaultSortKey = SortByPID

// SortKeys returns the supported keys.
func SortKeys() []SortKey {
	return []SortKey{SortByName, SortByPID, SortByParentPID, SortByThreads, SortByCommandLine}
}

// ParseSortKey parses a key case-insensitively. An empty string yields
// DefaultSortKey.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultSortKey, nil
	}
	if k := SortKey(s); k.Valid() {
		return k, nil
	}
	return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
		"unsupported sort key", map[string]any{"key": s, "supported": SortKeys()})
}

// Valid reports whether k is one of SortKeys.
func (k SortKey) Valid() bool {
	return slices.Contains(SortKeys(), k)
}

// String implements fmt.Stringer.
func (k SortKey) String() string {
	return string(k)
}

// Compare orders two records by the key. Absent command lines sort before
// any present one. Unknown keys treat every pair as equal.
func (k SortKey) Compare(a, b Record) int {
	switch k {
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByPID:
		return cmp.Compare(a.PID, b.PID)
	case SortByParentPID:
		return cmp.Compare(a.ParentPID, b.ParentPID)
	case SortByThreads:
		return cmp.Compare(a.Threads, b.Threads)
	case SortByCommandLine:
		switch {
		case a.CommandLine == nil && b.CommandLine == nil:
			return 0
		case a.CommandLine == nil:
			return -1
		case b.CommandLine == nil:
			return 1
		}
		return strings.Compare(*a.CommandLine, *b.CommandLine)
	default:
		return 0
	}
}

// Sort returns a stably sorted deep copy of records in ascending key order.
// Every subtree is sorted by the same key.
func Sort(records []Record, key SortKey) []Record {
	out := CloneAll(records)
	sortInPlace(out, key)
	return out
}

func sortInPlace(records []Record, key SortKey) {
	slices.SortStableFunc(records, key.Compare)
	for i := range records {
		sortInPlace(records[i].Children, key)
	}
}
