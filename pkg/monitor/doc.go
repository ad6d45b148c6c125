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


// Package monitor keeps the three node inventories current and serves
// consistent copies of them to readers.
//
// A Monitor owns one process inventory (pkg/inventory), the most recent CPU
// core list and the most recent unit list. Run refreshes each source on its
// own ticker:
//
//	source      default interval   refresh bound
//	cpus        1s                 defaults.CollectorTimeout
//	processes   2s                 defaults.CollectorTimeout
//	units       10s                defaults.UnitRefreshTimeout
//
// Unit refreshes run in the background; a tick that arrives while one is
// still in flight is skipped and counted. Every published view is guarded by
// a read/write mutex, so readers never observe a half updated inventory.
//
// The CLI uses the same type for one-shot reads: it calls the Refresh
// methods once and renders the result.
//
// Configuration comes from DefaultConfig, an optional YAML or JSON document
// (file, http(s) URL or cm://namespace/name) and NINV_* environment
// variables, in that order of precedence from lowest to highest.
package monitor
