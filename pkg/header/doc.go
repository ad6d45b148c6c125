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


// Package header defines the Kubernetes style envelope carried by documents
// that leave the process: snapshots written to files, ConfigMaps and OCI
// registries.
//
//	kind: Snapshot
//	apiVersion: ninv.nvidia.com/v1
//	metadata:
//	  timestamp: "2026-01-05T10:30:00Z"
//	  version: v0.4.0
//	  node: worker-7
//
// Readers check Kind and APIVersion before trusting the payload.
package header
