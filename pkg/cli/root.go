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
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-inventory/pkg/logging"
)

const (
	name           = "ninv"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the CLI and exits non-zero on failure: 2 when interrupted,
// 1 otherwise.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Node inventory: processes, CPU cores and systemd units",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("NINV_LOG_LEVEL", "LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "proc-root",
				Usage:   "procfs mount point to read",
				Value:   "/proc",
				Sources: cli.EnvVars("NINV_PROC_ROOT"),
			},
			formatFlag(),
			outputFlag(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			processesCmd(),
			cpusCmd(),
			unitsCmd(),
			snapshotCmd(),
		},
	}
}
