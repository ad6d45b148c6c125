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

// Package cpu parses /proc/cpuinfo into one record per logical core.
//
// The cpuinfo blob is split into blank-line separated blocks, and each block
// is parsed by ParseCoreRecord. Only four labels are read: "processor",
// "model name", "cpu MHz" and "cache size". Labels a platform does not report
// leave the corresponding field empty.
//
//	c := cpu.NewCollector(cpu.WithRoot("/proc"))
//	cores, err := c.Collect(ctx)
package cpu
