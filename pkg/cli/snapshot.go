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

	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"github.com/NVIDIA/node-inventory/pkg/oci"
	"github.com/NVIDIA/node-inventory/pkg/serializer"
	"github.com/NVIDIA/node-inventory/pkg/snapshotter"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture a node inventory snapshot",
		Description: `Captures host metadata, CPU cores, the process forest and systemd units in
one document. A unit failure (for example no reachable bus) is recorded in the
snapshot's errors section instead of failing the capture.

# Destinations

  --output snapshot.yaml                      local file
  --output cm://monitoring/node-a             Kubernetes ConfigMap
  --output oci://ghcr.io/acme/inventory:a1    OCI registry artifact

# Examples

  ninv snapshot --format yaml --output node.yaml
  ninv snapshot --skip-units --output cm://default/ninv-snapshot
  ninv snapshot --output oci://localhost:5000/inventory:latest --plain-http`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "skip-units",
				Usage:   "Do not query the service manager",
				Sources: cli.EnvVars("NINV_SKIP_UNITS"),
			},
			busFlag(),
			concurrencyFlag(),
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for oci:// destinations",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS verification for oci:// destinations",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			factory, err := newFactory(cmd)
			if err != nil {
				return err
			}

			out, err := snapshotSerializer(cmd, format)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := serializer.Close(out); cerr != nil {
					slog.Warn("failed to close output", "error", cerr)
				}
			}()

			ctx, cancel := context.WithTimeout(ctx, defaults.CLISnapshotTimeout)
			defer cancel()

			ns := snapshotter.NodeSnapshotter{
				Version:    version,
				Factory:    factory,
				Serializer: out,
				SkipUnits:  cmd.Bool("skip-units"),
			}
			return ns.Measure(ctx)
		},
	}
}

func snapshotSerializer(cmd *cli.Command, format serializer.Format) (serializer.Serializer, error) {
	output := cmd.String("output")
	if !oci.IsURI(output) {
		return serializer.NewFileWriterOrStdout(format, output), nil
	}

	ref, err := oci.ParseReference(output)
	if err != nil {
		return nil, err
	}
	return oci.NewWriter(ref, format,
		oci.WithVersion(version),
		oci.WithPlainHTTP(cmd.Bool("plain-http")),
		oci.WithInsecureTLS(cmd.Bool("insecure-tls")),
	), nil
}
