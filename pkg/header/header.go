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


package header

import (
	"time"
)

// Kind names the document type.
type Kind string

const (
	// KindSnapshot is a point in time capture of the node inventory.
	KindSnapshot Kind = "Snapshot"
)

// APIVersion is the current document schema.
const APIVersion = "ninv.nvidia.com/v1"

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k == KindSnapshot
}

// Header contains metadata and versioning information.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init resets h for a new document: kind, apiVersion, a UTC RFC 3339
// timestamp and, when non-empty, the producing tool version.
func (h *Header) Init(kind Kind, apiVersion string, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = map[string]string{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata["version"] = version
	}
}

// SetMetadata adds one metadata entry.
func (h *Header) SetMetadata(key, value string) {
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[key] = value
}

// GetKind returns the Kind field of the Header.
func (h *Header) GetKind() Kind {
	return h.Kind
}

// GetMetadata returns the Metadata map of the Header.
func (h *Header) GetMetadata() map[string]string {
	return h.Metadata
}
