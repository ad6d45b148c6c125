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


package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/node-inventory/pkg/collector"
	"github.com/NVIDIA/node-inventory/pkg/header"
	"github.com/NVIDIA/node-inventory/pkg/process"
	"github.com/NVIDIA/node-inventory/pkg/serializer"
)

// NodeSnapshotter captures the inventory of the current node. CPU and
// process collection must succeed. Host metadata, the Kubernetes node and
// units are optional and their failures are recorded in Snapshot.Errors.
type NodeSnapshotter struct {
	// Version is recorded in the snapshot metadata.
	Version string

	// Factory creates the collectors. If nil, the default factory is used.
	Factory collector.Factory

	// Serializer writes the snapshot. If nil, JSON is written to stdout.
	Serializer serializer.Serializer

	// SkipUnits disables the service manager query.
	SkipUnits bool

	// HostInfo reads host metadata. If nil, ReadHostInfo is used.
	HostInfo HostInfoFunc

	// NodeInfo reads the Kubernetes node object. If nil, ReadNodeInfo is
	// used when running inside a cluster and the source is skipped otherwise.
	NodeInfo NodeInfoFunc
}

// Measure collects a snapshot and serializes it.
func (n *NodeSnapshotter) Measure(ctx context.Context) error {
	snap, err := n.Collect(ctx)
	if err != nil {
		return err
	}

	if n.Serializer == nil {
		n.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}
	if err := n.Serializer.Serialize(ctx, snap); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}
	return nil
}

// Collect runs every source in parallel and assembles the snapshot.
func (n *NodeSnapshotter) Collect(ctx context.Context) (*Snapshot, error) {
	if n.Factory == nil {
		n.Factory = collector.NewDefaultFactory()
	}
	if n.HostInfo == nil {
		n.HostInfo = ReadHostInfo
	}
	if n.NodeInfo == nil && inCluster() {
		n.NodeInfo = ReadNodeInfo
	}

	slog.Debug("starting node snapshot")

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	snap := NewSnapshot()
	snap.Init(header.KindSnapshot, header.APIVersion, n.Version)
	snap.SetMetadata("snapshot-id", uuid.NewString())

	var mu sync.Mutex
	recordErr := func(source string, err error) {
		slog.Warn("optional snapshot source failed", "source", source, "error", err)
		mu.Lock()
		defer mu.Unlock()
		if snap.Errors == nil {
			snap.Errors = make(map[string]string)
		}
		snap.Errors[source] = err.Error()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer observe("host", time.Now())
		info, err := n.HostInfo(gctx)
		if err != nil {
			recordErr("host", err)
			return nil
		}
		mu.Lock()
		snap.Host = info
		mu.Unlock()
		return nil
	})

	if n.NodeInfo != nil {
		g.Go(func() error {
			defer observe("kubernetes", time.Now())
			info, err := n.NodeInfo(gctx)
			if err != nil {
				recordErr("kubernetes", err)
				return nil
			}
			mu.Lock()
			snap.Node = info
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		defer observe("cpus", time.Now())
		cores, err := n.Factory.CreateCPUCollector().Collect(gctx)
		if err != nil {
			return fmt.Errorf("failed to collect cpu inventory: %w", err)
		}
		mu.Lock()
		snap.CPUs = cores
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		defer observe("processes", time.Now())
		flat, err := n.Factory.CreateProcessCollector().Collect(gctx)
		if err != nil {
			return fmt.Errorf("failed to collect process inventory: %w", err)
		}
		forest := process.Sort(process.BuildForest(flat), process.SortByPID)
		mu.Lock()
		snap.Processes = forest
		mu.Unlock()
		snapshotProcessCount.Set(float64(len(flat)))
		return nil
	})

	if !n.SkipUnits {
		g.Go(func() error {
			defer observe("units", time.Now())
			client := n.Factory.CreateUnitClient()
			defer func() {
				if err := client.Close(); err != nil {
					slog.Debug("failed to close unit client", "error", err)
				}
			}()
			units, err := client.Refresh(gctx)
			if err != nil {
				recordErr("units", err)
				return nil
			}
			mu.Lock()
			snap.Units = units
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		slog.Error("snapshot collection failed", "error", err)
		return nil, err
	}

	switch {
	case snap.Node != nil:
		snap.SetMetadata("source-node", snap.Node.Name)
	case snap.Host != nil:
		snap.SetMetadata("source-node", snap.Host.Hostname)
	}

	snapshotCollectionTotal.WithLabelValues("success").Inc()
	slog.Debug("snapshot collection complete",
		"cpus", len(snap.CPUs),
		"processes", process.Count(snap.Processes),
		"units", len(snap.Units),
		"errors", len(snap.Errors))

	return snap, nil
}

func observe(source string, start time.Time) {
	snapshotSourceDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}
