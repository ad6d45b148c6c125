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


package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/node-inventory/pkg/errors"
)

// URIScheme is the URI scheme for OCI registry output (e.g., "oci://ghcr.io/org/repo:tag").
const URIScheme = "oci://"

// DefaultTag is applied by callers when a target carries no tag.
const DefaultTag = "latest"

// Reference is a parsed oci:// target.
type Reference struct {
	// Registry is the registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the repository path (e.g., "nvidia/node-inventory").
	Repository string
	// Tag is empty when the target did not name one.
	Tag string
}

// IsURI reports whether target uses the oci:// scheme.
func IsURI(target string) bool {
	return strings.HasPrefix(strings.TrimSpace(target), URIScheme)
}

// ParseReference parses an oci://registry/repository[:tag] target.
func ParseReference(target string) (*Reference, error) {
	target = strings.TrimSpace(target)
	if !IsURI(target) {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"OCI target must start with "+URIScheme, map[string]any{"target": target})
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err,
			map[string]any{"target": target})
	}
	if _, ok := ref.(reference.Digested); ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"OCI target cannot be pinned by digest", map[string]any{"target": target})
	}

	out := &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
	}
	if tagged, ok := ref.(reference.Tagged); ok {
		out.Tag = tagged.Tag()
	}

	if err := ValidateRegistryReference(out.Registry, out.Repository); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateRegistryReference checks that registry and repository form a valid
// image name. An http:// or https:// prefix on registry is ignored.
func ValidateRegistryReference(registry, repository string) error {
	name := fmt.Sprintf("%s/%s", stripProtocol(registry), repository)
	if _, err := reference.ParseNormalizedNamed(name); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "invalid registry reference", err,
			map[string]any{"registry": registry, "repository": repository})
	}
	return nil
}

// String returns the oci:// form.
func (r *Reference) String() string {
	return URIScheme + r.ImageReference()
}

// ImageReference returns registry/repository[:tag] without the scheme.
func (r *Reference) ImageReference() string {
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of the reference with tag set.
func (r *Reference) WithTag(tag string) *Reference {
	out := *r
	out.Tag = tag
	return &out
}

func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	return strings.TrimPrefix(registry, "http://")
}
