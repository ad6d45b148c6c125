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

package logging

import (
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvLogLevel names the environment variable consulted for the log level.
	EnvLogLevel = "LOG_LEVEL"
)

// ParseLogLevel converts a case-insensitive level name into a slog.Level.
// Unknown or empty names resolve to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger creates a JSON logger writing to stderr with module and
// version attributes attached to every record. Source location is included
// only at debug level.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	lvl := ParseLogLevel(level)
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: lvl <= slog.LevelDebug,
		Level:     lvl,
	})
	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// SetDefaultStructuredLogger installs a structured logger as the slog default
// using the level from LOG_LEVEL.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(EnvLogLevel))
}

// SetDefaultStructuredLoggerWithLevel installs a structured logger as the slog
// default with an explicit level. An empty level falls back to LOG_LEVEL.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// NewLogLogger returns a standard library logger that forwards to the default
// slog handler at the given level. Used for libraries that only accept *log.Logger.
func NewLogLogger(level slog.Level, withSource bool) *log.Logger {
	h := slog.Default().Handler()
	if withSource {
		return slog.NewLogLogger(h, level)
	}
	l := slog.NewLogLogger(h, level)
	l.SetFlags(0)
	return l
}
