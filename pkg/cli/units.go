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
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"github.com/NVIDIA/node-inventory/pkg/monitor"
)

// UnitProperties is the output of `units --unit`.
type UnitProperties struct {
	Unit       string         `json:"unit" yaml:"unit"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

func unitsCmd() *cli.Command {
	return &cli.Command{
		Name:  "units",
		Usage: "List systemd units over D-Bus",
		Description: `Introspects the systemd manager, then reads CanFreeze and CollectMode of every
unit. With --unit, prints the full property map of a single unit instead.

# Examples

  ninv units --format table
  ninv units --bus session
  ninv units --unit ssh.service --format yaml`,
		Flags: []cli.Flag{
			busFlag(),
			concurrencyFlag(),
			&cli.StringFlag{
				Name:    "unit",
				Aliases: []string{"u"},
				Usage:   "Print all properties of this unit (e.g. ssh.service)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			factory, err := newFactory(cmd)
			if err != nil {
				return err
			}

			client := factory.CreateUnitClient()
			defer func() {
				if cerr := client.Close(); cerr != nil {
					slog.Debug("failed to close unit client", "error", cerr)
				}
			}()

			readCtx, cancel := context.WithTimeout(ctx, defaults.UnitRefreshTimeout)
			defer cancel()

			if unit := cmd.String("unit"); unit != "" {
				props, err := client.Properties(readCtx, unit)
				if err != nil {
					return err
				}
				return write(ctx, cmd, UnitProperties{Unit: unit, Properties: props})
			}

			units, err := client.Refresh(readCtx)
			if err != nil {
				return err
			}

			return write(ctx, cmd, monitor.UnitList{
				CollectedAt: time.Now().UTC(),
				Bus:         string(factory.Bus),
				Count:       len(units),
				Units:       units,
			})
		},
	}
}
