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
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-inventory/pkg/collector/systemd"
	"github.com/NVIDIA/node-inventory/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "yaml", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "json", format: "json", wantFormat: serializer.FormatJSON},
		{name: "table", format: "table", wantFormat: serializer.FormatTable},
		{name: "upper case", format: "JSON", wantFormat: serializer.FormatJSON},
		{name: "xml", format: "xml", wantErr: true},
		{name: "csv", format: "csv", wantErr: true},
		{name: "empty", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestNewFactory(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantRoot    string
		wantThreads bool
		wantBus     systemd.BusKind
		wantN       int
		wantErr     bool
	}{
		{
			name:        "defaults",
			args:        []string{"test"},
			wantRoot:    "/proc",
			wantThreads: true,
			wantBus:     systemd.BusSystem,
			wantN:       8,
		},
		{
			name:        "overrides",
			args:        []string{"test", "--proc-root", "/host/proc", "--threads=false", "--bus", "session", "--concurrency", "2"},
			wantRoot:    "/host/proc",
			wantThreads: false,
			wantBus:     systemd.BusSession,
			wantN:       2,
		},
		{
			name:    "bad bus",
			args:    []string{"test", "--bus", "kernel"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "proc-root", Value: "/proc"},
					&cli.BoolFlag{Name: "threads", Value: true},
					busFlag(),
					concurrencyFlag(),
				},
				Action: func(_ context.Context, c *cli.Command) error {
					f, err := newFactory(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("newFactory() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if tt.wantErr {
						return nil
					}
					if f.ProcRoot != tt.wantRoot {
						t.Errorf("ProcRoot = %q, want %q", f.ProcRoot, tt.wantRoot)
					}
					if f.Threads != tt.wantThreads {
						t.Errorf("Threads = %v, want %v", f.Threads, tt.wantThreads)
					}
					if f.Bus != tt.wantBus {
						t.Errorf("Bus = %q, want %q", f.Bus, tt.wantBus)
					}
					if f.UnitConcurrency != tt.wantN {
						t.Errorf("UnitConcurrency = %d, want %d", f.UnitConcurrency, tt.wantN)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), tt.args); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}
