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


package api

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/node-inventory/pkg/logging"
	"github.com/NVIDIA/node-inventory/pkg/monitor"
	"github.com/NVIDIA/node-inventory/pkg/server"
)

const (
	name           = "ninvd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/node-inventory/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads the monitor config, starts the refresh loops and the HTTP
// server, and blocks until SIGINT or SIGTERM.
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg, err := monitor.LoadConfig(ctx, os.Getenv(monitor.EnvConfig))
	if err != nil {
		slog.Error("invalid monitor configuration", "error", err)
		return err
	}

	m, err := monitor.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			slog.Warn("failed to close monitor", "error", cerr)
		}
	}()

	return run(ctx, m, newServer(m, cfg))
}

func newServer(m *monitor.Monitor, cfg monitor.Config) *server.Server {
	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(NewHandler(m, cfg).Routes()),
		server.WithReadinessProbe(m.Ready),
	)
}

// run stops the monitor once the server returns, and the server once the
// monitor fails.
func run(ctx context.Context, m *monitor.Monitor, s *server.Server) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return s.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
