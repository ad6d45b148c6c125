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
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"github.com/NVIDIA/node-inventory/pkg/monitor"
)

func cpusCmd() *cli.Command {
	return &cli.Command{
		Name:  "cpus",
		Usage: "List logical cores from /proc/cpuinfo",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			factory, err := newFactory(cmd)
			if err != nil {
				return err
			}

			collectCtx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
			defer cancel()

			cores, err := factory.CreateCPUCollector().Collect(collectCtx)
			if err != nil {
				return err
			}

			return write(ctx, cmd, monitor.CPUList{
				CollectedAt: time.Now().UTC(),
				Count:       len(cores),
				Cores:       cores,
			})
		},
	}
}
