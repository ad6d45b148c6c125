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

// Package file provides helpers for reading and splitting kernel text resources.
//
// Kernel pseudo-files such as /proc/cpuinfo and /proc/<pid>/status are made of
// "Label: value" lines, sometimes grouped into blank-line separated blocks.
// The Parser splits such content into entries and SplitLabel breaks an entry
// into its label and value.
//
// # Usage
//
// Split /proc/cpuinfo into per-core blocks:
//
//	p := file.NewParser(file.WithDelimiter("\n\n"))
//	blocks, err := p.GetLines("/proc/cpuinfo")
//	if err != nil {
//	    return nil, fmt.Errorf("failed to read cpuinfo: %w", err)
//	}
//
// Split an in-memory status block into lines and labels:
//
//	for _, line := range file.NewParser().Split(status) {
//	    label, value, ok := file.SplitLabel(line)
//	    ...
//	}
//
// # Error Handling
//
// GetLines wraps read errors with the path, so callers can still test for
// os.ErrNotExist and os.ErrPermission with errors.Is.
//
// # Thread Safety
//
// A Parser is immutable after construction and safe for concurrent use.
package file
