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


// Package client provides the shared Kubernetes client used to publish
// inventory snapshots to ConfigMaps and to read daemon configuration from
// them.
//
// The client is created once per process on first use:
//
//	kube, _, err := client.GetKubeClient()
//
// Configuration is discovered in this order: the KUBECONFIG environment
// variable, ~/.kube/config, then the in-cluster service account. A specific
// kubeconfig can be used instead with BuildKubeClient, which bypasses the
// shared instance.
package client
