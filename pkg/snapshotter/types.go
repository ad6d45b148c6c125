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
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/NVIDIA/node-inventory/pkg/collector/cpu"
	"github.com/NVIDIA/node-inventory/pkg/collector/systemd"
	"github.com/NVIDIA/node-inventory/pkg/errors"
	"github.com/NVIDIA/node-inventory/pkg/header"
	"github.com/NVIDIA/node-inventory/pkg/k8s/client"
	"github.com/NVIDIA/node-inventory/pkg/k8s/node"
	"github.com/NVIDIA/node-inventory/pkg/process"
	"github.com/NVIDIA/node-inventory/pkg/version"
)

// Snapshotter captures and writes one inventory snapshot.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// Snapshot is a point in time capture of the node inventory.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	Host *HostInfo `json:"host,omitempty" yaml:"host,omitempty"`

	// Node is set only when the snapshot was taken inside a cluster.
	Node *node.Info `json:"node,omitempty" yaml:"node,omitempty"`

	CPUs []cpu.CoreRecord `json:"cpus" yaml:"cpus"`

	// Processes is the process forest ordered by pid.
	Processes []process.Record `json:"processes" yaml:"processes"`

	// Units is nil when unit collection was skipped or failed.
	Units []systemd.UnitRecord `json:"units,omitempty" yaml:"units,omitempty"`

	// Errors holds the failures of optional sources keyed by source name.
	Errors map[string]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		CPUs:      make([]cpu.CoreRecord, 0),
		Processes: make([]process.Record, 0),
	}
}

// HostInfo describes the machine the snapshot was taken on.
type HostInfo struct {
	Hostname        string    `json:"hostname" yaml:"hostname"`
	OS              string    `json:"os" yaml:"os"`
	Platform        string    `json:"platform,omitempty" yaml:"platform,omitempty"`
	PlatformVersion string    `json:"platformVersion,omitempty" yaml:"platformVersion,omitempty"`
	KernelVersion   string    `json:"kernelVersion,omitempty" yaml:"kernelVersion,omitempty"`
	KernelArch      string    `json:"kernelArch,omitempty" yaml:"kernelArch,omitempty"`
	BootTime        time.Time `json:"bootTime" yaml:"bootTime"`

	// Kernel is KernelVersion parsed, nil when the release string is not dotted numeric.
	Kernel *version.Version `json:"kernel,omitempty" yaml:"kernel,omitempty"`
}

// HostInfoFunc reads host metadata.
type HostInfoFunc func(ctx context.Context) (*HostInfo, error)

// ReadHostInfo reads host metadata through gopsutil.
func ReadHostInfo(ctx context.Context) (*HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read host info", err)
	}
	hi := &HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		KernelArch:      info.KernelArch,
		BootTime:        time.Unix(int64(info.BootTime), 0).UTC(), //nolint:gosec // boot time fits in int64
	}
	if v, err := version.Parse(info.KernelVersion); err == nil {
		hi.Kernel = &v
	} else {
		slog.Debug("unparsed kernel release", "release", info.KernelVersion, "error", err)
	}
	return hi, nil
}

// NodeInfoFunc reads the Kubernetes node the snapshot is taken on.
type NodeInfoFunc func(ctx context.Context) (*node.Info, error)

// ReadNodeInfo reads the current node through the shared client. The node
// name comes from the environment.
func ReadNodeInfo(ctx context.Context) (*node.Info, error) {
	kube, _, err := client.GetKubeClient()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "kubernetes client unavailable", err)
	}
	return node.Get(ctx, kube, "")
}

func inCluster() bool {
	return os.Getenv("KUBERNETES_SERVICE_HOST") != ""
}
