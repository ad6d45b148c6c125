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

// BuildForest converts a flat list of records into a forest by iterative
// leaf-peeling. Each round peels the records no remaining record claims as
// parent; a peeled record adopts the unattached roots whose ParentPID equals
// its pid, then becomes an unattached root itself. Records still unattached
// when the working list is empty are the forest roots.
//
// Records whose ParentPID equals their own PID are roots. If a round finds no
// leaf (a cycle among distinct pids) the first remaining record is peeled
// anyway, so every record is placed exactly once and the loop terminates in at
// most len(flat) rounds. The input is not modified.
func BuildForest(flat []Record) []Record {
	working := CloneAll(flat)

	var roots []Record
	var attached []bool
	byParent := make(map[int][]int)

	for len(working) > 0 {
		hasChild := make(map[int]struct{}, len(working))
		for _, r := range working {
			if r.ParentPID != r.PID {
				hasChild[r.ParentPID] = struct{}{}
			}
		}

		leaves := make([]Record, 0, len(working))
		rest := make([]Record, 0, len(working))
		for _, r := range working {
			if _, ok := hasChild[r.PID]; ok {
				rest = append(rest, r)
				continue
			}
			leaves = append(leaves, r)
		}

		if len(leaves) == 0 {
			leaves = append(leaves, rest[0])
			rest = rest[1:]
		}

		for _, leaf := range leaves {
			for _, idx := range byParent[leaf.PID] {
				if attached[idx] {
					continue
				}
				leaf.Children = append(leaf.Children, roots[idx])
				attached[idx] = true
			}
			delete(byParent, leaf.PID)

			roots = append(roots, leaf)
			attached = append(attached, false)
			if leaf.ParentPID != leaf.PID {
				byParent[leaf.ParentPID] = append(byParent[leaf.ParentPID], len(roots)-1)
			}
		}

		working = rest
	}

	forest := make([]Record, 0, len(roots))
	for i, r := range roots {
		if !attached[i] {
			forest = append(forest, r)
		}
	}
	return forest
}
