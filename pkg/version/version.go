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

// Package version parses the dotted release strings reported by the node,
// such as kernel releases ("6.8.0-45-generic") and kubelet versions
// ("v1.30.2-eks-3025e55").
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NVIDIA/node-inventory/pkg/errors"
)

const maxComponents = 3

// Version is a release number with up to three numeric components.
// Anything after the numeric part is kept verbatim in Extras.
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	Patch int `json:"patch" yaml:"patch"`

	// Precision is the number of components present in the source string.
	Precision int `json:"precision" yaml:"precision"`

	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// Parse reads s into a Version. A leading "v" is ignored. The numeric part
// ends at the first '-' or '+' that follows a digit.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, errors.New(errors.ErrCodeInvalidRequest, "version is empty")
	}

	raw := strings.TrimPrefix(s, "v")
	var v Version

	main := raw
	for i := 1; i < len(raw); i++ {
		if raw[i] != '-' && raw[i] != '+' {
			continue
		}
		if raw[i-1] >= '0' && raw[i-1] <= '9' {
			main, v.Extras = raw[:i], raw[i:]
			break
		}
	}

	parts := strings.Split(main, ".")
	if len(parts) > maxComponents {
		return Version{}, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"version has too many components", map[string]any{"version": s})
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("version component %q is not a non-negative number", part),
				map[string]any{"version": s})
		}
		switch i {
		case 0:
			v.Major = n
		case 1:
			v.Minor = n
		case 2:
			v.Patch = n
		}
	}
	v.Precision = len(parts)
	return v, nil
}

// String renders the numeric part at its precision, without extras.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return strconv.Itoa(v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// Compare returns -1, 0 or 1. Only the components present in both
// versions are compared, so "6.8" equals "6.8.12".
func (v Version) Compare(other Version) int {
	precision := min(v.Precision, other.Precision)
	a := [maxComponents]int{v.Major, v.Minor, v.Patch}
	b := [maxComponents]int{other.Major, other.Minor, other.Patch}
	for i := 0; i < precision; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v is equal to or newer than other.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}
