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

package process

import (
	"regexp"

	"github.com/NVIDIA/node-inventory/pkg/errors"
)

// Matcher is a compiled search pattern. The zero value and a Matcher built
// from an empty pattern match every record.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// NewMatcher compiles pattern as a case-insensitive regular expression.
func NewMatcher(pattern string) (*Matcher, error) {
	if pattern == "" {
		return &Matcher{}, nil
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"invalid search pattern", err, map[string]any{"pattern": pattern})
	}

	return &Matcher{pattern: pattern, re: re}, nil
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	if m == nil {
		return ""
	}
	return m.pattern
}

// Match reports whether the record's name or command line matches. It does
// not look at descendants.
func (m *Matcher) Match(r Record) bool {
	if m == nil || m.re == nil {
		return true
	}
	return m.re.MatchString(r.Name) || m.re.MatchString(r.CommandLineOrEmpty())
}

// Apply returns a copy of records reduced to the nodes that match or have a
// retained descendant. Children of a retained node are its retained children.
// On a flat list this keeps exactly the matching records.
func (m *Matcher) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		kept, ok := m.apply(r)
		if ok {
			out = append(out, kept)
		}
	}
	return out
}

func (m *Matcher) apply(r Record) (Record, bool) {
	var children []Record
	for _, c := range r.Children {
		if kept, ok := m.apply(c); ok {
			children = append(children, kept)
		}
	}

	if len(children) == 0 && !m.Match(r) {
		return Record{}, false
	}

	out := r.Clone()
	out.Children = children
	return out, true
}

// Filter compiles pattern and applies it to records. An invalid pattern fails
// the whole call with an INVALID_REQUEST error.
func Filter(records []Record, pattern string) ([]Record, error) {
	m, err := NewMatcher(pattern)
	if err != nil {
		return nil, err
	}
	return m.Apply(records), nil
}
