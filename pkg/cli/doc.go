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


// Package cli implements the ninv command-line interface.
//
// # Commands
//
// processes - process and thread inventory:
//
//	ninv processes [--search REGEX] [--sort name|pid|ppid|threads|cmdline] [--tree] [--threads]
//
// cpus - one record per logical core from /proc/cpuinfo:
//
//	ninv cpus
//
// units - systemd units over D-Bus, or the full property map of one unit:
//
//	ninv units [--bus system|session] [--concurrency N] [--unit NAME]
//
// snapshot - everything above in one document:
//
//	ninv snapshot [--output FILE|cm://ns/name|oci://registry/repo:tag] [--skip-units]
//
// # Global Flags
//
//	--log-level    debug, info, warn, error (default: warn)
//	--proc-root    procfs mount point (default: /proc)
//	--format, -t   json, yaml, table (default: table)
//	--output, -o   file path or cm:// URI (default: stdout)
//
// Every flag can also be set through its NINV_* environment variable, e.g.
// NINV_PROC_ROOT=/host/proc.
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, collection failure)
//	2  Interrupted or timed out
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/node-inventory/pkg/cli.version=1.0.0'"
package cli
