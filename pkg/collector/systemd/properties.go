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

package systemd

import (
	"context"
	"log/slog"
	"strings"

	sddbus "github.com/coreos/go-systemd/v22/dbus"

	"github.com/NVIDIA/node-inventory/pkg/errors"
)

// Keys filtered out of Properties for privacy/security or noise reduction.
var filterOutPropertyKeys = []string{
	"AllowedCPUs",
	"AllowedMemoryNodes",
	"Asserts",
	"BPFProgram",
	"BusName",
	"Id",
	"*Credential*",
}

type propertyConn interface {
	GetAllPropertiesContext(ctx context.Context, unit string) (map[string]any, error)
	Close()
}

type propertySource func(ctx context.Context) (propertyConn, error)

func goSystemdSource(kind BusKind) propertySource {
	return func(ctx context.Context) (propertyConn, error) {
		if kind == BusSession {
			return sddbus.NewUserConnectionContext(ctx)
		}
		return sddbus.NewSystemdConnectionContext(ctx)
	}
}

// Properties returns every property of the named unit (e.g.
// "containerd.service") minus the filtered keys. It opens a short-lived
// go-systemd connection independent of the refresh connection.
func (c *Client) Properties(ctx context.Context, unit string) (map[string]any, error) {
	if unit == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "unit name is required")
	}

	conn, err := c.props(ctx)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "failed to connect to systemd", err,
			map[string]any{"bus": string(c.kind)})
	}
	defer conn.Close()

	data, err := conn.GetAllPropertiesContext(ctx, unit)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "failed to get unit properties", err,
			map[string]any{"unit": unit})
	}

	out := FilterOut(data, filterOutPropertyKeys)
	slog.Debug("read unit properties", slog.String("unit", unit), slog.Int("count", len(out)))

	return out, nil
}

// FilterOut returns a copy of props without the keys matching any pattern.
// Patterns support "*" wildcards: "prefix*", "*suffix", "*contains*" and
// exact names.
func FilterOut(props map[string]any, patterns []string) map[string]any {
	result := make(map[string]any, len(props))
	for key, value := range props {
		omit := false
		for _, pattern := range patterns {
			if matchesPattern(key, pattern) {
				omit = true
				break
			}
		}
		if !omit {
			result[key] = value
		}
	}
	return result
}

func matchesPattern(key, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return key == pattern
	}

	segments := strings.Split(pattern, "*")
	pos := 0
	for i, segment := range segments {
		if segment == "" {
			continue
		}

		// anchored at the start unless the pattern begins with a wildcard
		if i == 0 {
			if !strings.HasPrefix(key, segment) {
				return false
			}
			pos = len(segment)
			continue
		}

		// anchored at the end unless the pattern ends with a wildcard
		if i == len(segments)-1 {
			return strings.HasSuffix(key[pos:], segment)
		}

		idx := strings.Index(key[pos:], segment)
		if idx == -1 {
			return false
		}
		pos += idx + len(segment)
	}
	return true
}
