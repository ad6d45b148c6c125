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


package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"github.com/NVIDIA/node-inventory/pkg/inventory"
	"github.com/NVIDIA/node-inventory/pkg/monitor"
	"github.com/NVIDIA/node-inventory/pkg/process"
)

func sortKeyNames() string {
	keys := process.SortKeys()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

func processesCmd() *cli.Command {
	return &cli.Command{
		Name:    "processes",
		Aliases: []string{"ps"},
		Usage:   "List processes and threads from procfs",
		Description: `Reads every /proc/<pid>/status and cmdline once and prints the result as a
flat list or as a forest built from parent pids. Threads appear as children of
their process.

# Examples

Forest of everything matching ssh, ancestors included:
  ninv processes --tree --search ssh

Flat list sorted by thread count, without threads:
  ninv processes --sort threads --threads=false --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Case-insensitive regular expression matched against name and command line",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: fmt.Sprintf("Sort key (supported values: %s)", sortKeyNames()),
				Value: process.DefaultSortKey.String(),
			},
			&cli.BoolFlag{
				Name:  "tree",
				Usage: "Print the process forest instead of a flat list",
			},
			&cli.BoolFlag{
				Name:  "threads",
				Usage: "Include threads as children of their process",
				Value: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			key, err := process.ParseSortKey(cmd.String("sort"))
			if err != nil {
				return err
			}
			matcher, err := process.NewMatcher(cmd.String("search"))
			if err != nil {
				return err
			}
			factory, err := newFactory(cmd)
			if err != nil {
				return err
			}

			state := inventory.NewState(factory.CreateProcessCollector(),
				inventory.WithSortKey(key),
				inventory.WithMatcher(matcher))

			collectCtx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
			defer cancel()
			if err := state.Refresh(collectCtx); err != nil {
				return err
			}

			return write(ctx, cmd, processList(state.View(), cmd.Bool("tree")))
		},
	}
}

func processList(v inventory.View, tree bool) monitor.ProcessList {
	out := monitor.ProcessList{
		Generation:    v.Generation,
		CollectedAt:   v.CollectedAt,
		View:          monitor.ViewFlat,
		SortKey:       v.SortKey,
		SearchPattern: v.SearchPattern,
		Records:       v.FilteredFlat,
	}
	if tree {
		out.View = monitor.ViewTree
		out.Records = v.FilteredForest
	}
	out.Count = process.Count(out.Records)
	return out
}
