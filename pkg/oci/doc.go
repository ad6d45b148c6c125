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


// Package oci publishes node inventory snapshots to OCI-compliant registries.
//
// A snapshot is pushed as a single-layer OCI 1.1 artifact using ORAS (OCI
// Registry As Storage). The layer holds the encoded document (JSON or YAML)
// and carries an org.opencontainers.image.title annotation so that
// `oras pull` unpacks it to inventory.json or inventory.yaml.
//
// # Usage
//
//	ref, err := oci.ParseReference("oci://ghcr.io/acme/inventory:node-a")
//	if err != nil {
//	    return err
//	}
//	w := oci.NewWriter(ref, serializer.FormatJSON, oci.WithVersion(version))
//	if err := w.Serialize(ctx, snap); err != nil {
//	    return err
//	}
//
// # Authentication
//
// Credentials come from the standard Docker configuration
// (~/.docker/config.json) through the ORAS credentials package.
//
// # Artifact Type
//
// Artifacts are pushed with the artifact type
// "application/vnd.nvidia.ninv.snapshot.v1". Consumers that do not know
// this type should treat the artifact as a non-executable blob.
package oci
