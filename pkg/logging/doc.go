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

// Package logging configures log/slog for the ninv binaries.
//
// Records are JSON on stderr and carry module and version attributes.
// Debug level adds the source location. The level comes from an explicit
// argument or the LOG_LEVEL environment variable, and defaults to info:
//
//	logging.SetDefaultStructuredLogger("ninvd", version)
//	logging.SetDefaultStructuredLoggerWithLevel("ninv", version, cmd.String("log-level"))
//
// NewLogLogger adapts the default handler for APIs that take a *log.Logger,
// such as http.Server.ErrorLog.
package logging
