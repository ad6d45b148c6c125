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
Package inventory owns the process inventory state: one authoritative flat
list of process records and three views derived from it.

	flat            every collected record
	forest          flat arranged into parent/child trees
	filteredFlat    flat reduced by the search pattern
	filteredForest  forest reduced by the search pattern, ancestors kept

All four views are sorted by the current sort key. Every mutating call
computes new views off to the side and swaps them in together, so a caller
never observes views from different collection cycles, keys or patterns.

	state := inventory.NewState(collector, inventory.WithSortKey(process.SortByName))
	if err := state.Refresh(ctx); err != nil {
	    return err
	}
	if err := state.SetSearchPattern("ssh"); err != nil {
	    // invalid pattern, previous views kept
	}
	view := state.View()

State is owned by a single caller. Concurrent use must be serialized by that
caller.
*/
package inventory
