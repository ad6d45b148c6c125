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

/*
Package process models kernel process records and the pure operations the
inventory applies to them.

A Record is one process or thread as reported by procfs. Collectors produce a
flat, unordered list of records; everything else in this package is a pure
function over that list:

  - ParseRecord and ParseCommandLine turn raw status and cmdline text into a Record
  - BuildForest reconstructs the parent/child forest by leaf-peeling
  - Flatten reverses BuildForest into a pre-order flat list
  - Filter and Matcher reduce a list or forest to the records matching a
    case-insensitive regular expression plus their ancestors
  - Sort orders a list or forest by a SortKey, recursively and stably

None of the functions mutate their input. Results own their Children slices.

# Usage

	flat := []process.Record{...}
	forest := process.BuildForest(flat)

	filtered, err := process.Filter(forest, "ssh")
	if err != nil {
	    return err // invalid pattern
	}
	sorted := process.Sort(filtered, process.SortByPID)

# Forest Construction

BuildForest tolerates children listed before their parents, parents absent
from the snapshot, and records that name themselves as parent. A pid is the
identity of a record; pid sets are hash maps so arbitrarily large pids are
safe.
*/
package process
