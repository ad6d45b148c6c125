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
	"encoding/xml"
	"path"

	"github.com/godbus/dbus/v5/introspect"

	"github.com/NVIDIA/node-inventory/pkg/errors"
)

// ParseUnitNames extracts every child node name from an introspection
// document, in document order. Nested nodes are returned as paths relative
// to the root node.
func ParseUnitNames(doc string) ([]string, error) {
	var root introspect.Node
	if err := xml.Unmarshal([]byte(doc), &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFormat, "failed to parse introspection document", err)
	}

	names := make([]string, 0, len(root.Children))
	var walk func(prefix string, nodes []introspect.Node)
	walk = func(prefix string, nodes []introspect.Node) {
		for _, n := range nodes {
			if n.Name == "" {
				continue
			}
			name := path.Join(prefix, n.Name)
			names = append(names, name)
			walk(name, n.Children)
		}
	}
	walk("", root.Children)

	return names, nil
}
