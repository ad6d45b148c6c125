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

// Record is one process or thread.
type Record struct {
	// Name is the executable name from the status "Name" label.
	Name string `json:"name" yaml:"name"`

	// PID is the process (or thread) id, unique within one snapshot.
	PID int `json:"pid" yaml:"pid"`

	// ParentPID may reference a pid absent from the snapshot, in which case
	// the record becomes a forest root.
	ParentPID int `json:"ppid" yaml:"ppid"`

	// Threads is the thread count, 1 when the kernel does not report it.
	Threads int `json:"threads" yaml:"threads"`

	// CommandLine is nil when the cmdline resource could not be read.
	CommandLine *string `json:"cmdline,omitempty" yaml:"cmdline,omitempty"`

	// Thread is true for records captured from task/<tid>/status.
	Thread bool `json:"thread,omitempty" yaml:"thread,omitempty"`

	// Children are owned exclusively by this record.
	Children []Record `json:"children,omitempty" yaml:"children,omitempty"`
}

// CommandLineOrEmpty returns the command line, or "" when it is absent.
func (r Record) CommandLineOrEmpty() string {
	if r.CommandLine == nil {
		return ""
	}
	return *r.CommandLine
}

// Clone returns a deep copy of the record and its subtree.
func (r Record) Clone() Record {
	out := r
	if r.CommandLine != nil {
		cmd := *r.CommandLine
		out.CommandLine = &cmd
	}
	out.Children = CloneAll(r.Children)
	return out
}

// CloneAll deep copies a list or forest. A nil input yields nil.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}
	return out
}

// Flatten returns the records of a forest in pre-order with their children
// stripped.
func Flatten(forest []Record) []Record {
	out := make([]Record, 0, Count(forest))
	var walk func([]Record)
	walk = func(nodes []Record) {
		for _, n := range nodes {
			c := n.Clone()
			c.Children = nil
			out = append(out, c)
			walk(n.Children)
		}
	}
	walk(forest)
	return out
}

// Count returns the number of records in a list or forest, descendants
// included.
func Count(records []Record) int {
	n := 0
	for _, r := range records {
		n += 1 + Count(r.Children)
	}
	return n
}

// Walk calls fn for every record in pre-order with its depth, roots at 0.
// Walking stops early when fn returns false.
func Walk(records []Record, fn func(r Record, depth int) bool) {
	var walk func([]Record, int) bool
	walk = func(nodes []Record, depth int) bool {
		for _, n := range nodes {
			if !fn(n, depth) || !walk(n.Children, depth+1) {
				return false
			}
		}
		return true
	}
	walk(records, 0)
}
