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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-inventory/pkg/collector"
	"github.com/NVIDIA/node-inventory/pkg/collector/systemd"
	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"github.com/NVIDIA/node-inventory/pkg/serializer"
)

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination (default: stdout).
	Supports: file paths or ConfigMap URIs (cm://namespace/name); snapshot also
	accepts OCI URIs (oci://registry/repo:tag).`,
		Sources: cli.EnvVars("NINV_OUTPUT"),
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   "Output format (json, yaml, table)",
		Value:   string(serializer.FormatTable),
		Sources: cli.EnvVars("NINV_FORMAT"),
	}
}

func busFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "bus",
		Usage:   "Service manager bus (system, session)",
		Value:   string(systemd.BusSystem),
		Sources: cli.EnvVars("NINV_BUS"),
	}
}

func concurrencyFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "concurrency",
		Usage:   "Number of units whose properties are read in parallel",
		Value:   defaults.UnitReadConcurrency,
		Sources: cli.EnvVars("NINV_UNIT_CONCURRENCY"),
	}
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}

// newFactory builds the collector factory from the global and command flags.
// Flags a command does not define read as their zero value and are skipped.
func newFactory(cmd *cli.Command) (*collector.DefaultFactory, error) {
	opts := []collector.Option{
		collector.WithProcRoot(cmd.String("proc-root")),
	}
	if cmd.IsSet("threads") {
		opts = append(opts, collector.WithThreads(cmd.Bool("threads")))
	}
	if b := cmd.String("bus"); b != "" {
		kind, err := systemd.ParseBusKind(b)
		if err != nil {
			return nil, err
		}
		opts = append(opts, collector.WithBusKind(kind))
	}
	if n := cmd.Int("concurrency"); n > 0 {
		opts = append(opts, collector.WithUnitConcurrency(n))
	}
	return collector.NewDefaultFactory(opts...), nil
}

// write serializes v to the --output destination in the --format format.
func write(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	s := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	defer func() {
		if cerr := serializer.Close(s); cerr != nil {
			slog.Warn("failed to close output", "error", cerr)
		}
	}()

	return s.Serialize(ctx, v)
}
