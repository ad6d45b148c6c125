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

// Package process collects process and thread records from procfs.
//
// The collector enumerates every numeric entry under the procfs root with
// github.com/prometheus/procfs, parses its status resource and reads its
// cmdline. Threads listed under task/<tid> become additional records whose
// ParentPID is the owning process, so the forest builder places them as
// leaves under their process. The result is a flat, unordered list.
//
// # Usage
//
//	c := process.NewCollector(process.WithRoot("/host/proc"))
//	records, err := c.Collect(ctx)
//	if err != nil {
//	    return err // only context cancellation
//	}
//
// # Failure Policy
//
// Processes exit while the scan runs. An entry whose status can no longer be
// read is skipped and logged at debug level. A record with a malformed
// numeric field is skipped, logged and counted in
// ninv_process_records_skipped_total. An unreadable procfs root yields an
// empty list and a warning. Collect returns an error only when its context is
// done.
package process
