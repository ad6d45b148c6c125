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

// Package systemd inventories systemd units over D-Bus.
//
// A Client introspects /org/freedesktop/systemd1/unit on the service manager,
// collects every child node name and reads the CanFreeze, CollectMode and Id
// properties of org.freedesktop.systemd1.Unit for each one. Property reads run
// through an errgroup bounded by the configured concurrency; a limit of 1
// reads strictly sequentially. Results keep introspection order.
//
// # Usage
//
//	client := systemd.NewClient(systemd.WithBusKind(systemd.BusSystem))
//	defer client.Close()
//
//	units, err := client.Refresh(ctx)
//	if err != nil {
//	    // errors.CodeOf(err) is TRANSPORT or FORMAT
//	}
//
// # Connection
//
// The bus connection is created lazily on first use and reused afterwards.
// Concurrent first use creates exactly one connection. A failed dial leaves
// the client disconnected, so the next refresh dials again; a connection the
// bus has closed is replaced the same way.
//
// # Error Handling
//
// A refresh is all-or-nothing. Connect, introspection, object path and
// property failures return a TRANSPORT error; an introspection document that
// does not parse returns a FORMAT error. On any error the stored unit list is
// left as it was before the call.
//
// # Full Properties
//
// Properties returns every property of one unit through go-systemd, with
// noisy and sensitive keys filtered out:
//
//	props, err := client.Properties(ctx, "containerd.service")
package systemd
