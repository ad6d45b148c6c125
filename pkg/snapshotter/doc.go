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


// Package snapshotter captures point in time node inventory snapshots.
//
// A Snapshot holds host metadata, the CPU inventory, the process forest and,
// unless skipped, the systemd units. Sources are collected in parallel. CPU
// and process collection are required; host metadata and unit failures are
// recorded under Snapshot.Errors so a node without a reachable bus still
// produces a snapshot.
//
// Inside a cluster (KUBERNETES_SERVICE_HOST set) the node object named by
// NODE_NAME is added as well, and its name becomes the source-node
// metadata.
//
// # Usage
//
//	s := &snapshotter.NodeSnapshotter{
//	    Version:    version,
//	    Serializer: serializer.NewFileWriterOrStdout(serializer.FormatYAML, "cm://default/node-a"),
//	}
//	if err := s.Measure(ctx); err != nil {
//	    return err
//	}
//
// Any serializer.Serializer can receive the snapshot: stdout, a file, a
// ConfigMap, or an OCI registry through oci.Writer.
package snapshotter
