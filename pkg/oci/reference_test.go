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
	"testing"

	apperrors "github.com/NVIDIA/node-inventory/pkg/errors"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantReg  string
		wantRepo string
		wantTag  string
		wantErr  bool
	}{
		{
			name:     "with tag",
			input:    "oci://ghcr.io/nvidia/inventory:v1.0.0",
			wantReg:  "ghcr.io",
			wantRepo: "nvidia/inventory",
			wantTag:  "v1.0.0",
		},
		{
			name:     "without tag",
			input:    "oci://ghcr.io/nvidia/inventory",
			wantReg:  "ghcr.io",
			wantRepo: "nvidia/inventory",
		},
		{
			name:     "port and tag",
			input:    "oci://localhost:5000/test/inventory:node-a",
			wantReg:  "localhost:5000",
			wantRepo: "test/inventory",
			wantTag:  "node-a",
		},
		{
			name:     "surrounding whitespace",
			input:    "  oci://localhost:5000/inv:v1 ",
			wantReg:  "localhost:5000",
			wantRepo: "inv",
			wantTag:  "v1",
		},
		{name: "not an oci uri", input: "/tmp/snapshot.json", wantErr: true},
		{name: "uppercase repository", input: "oci://ghcr.io/NVIDIA/Inventory:v1", wantErr: true},
		{name: "digest", input: "oci://ghcr.io/nvidia/inventory@sha256:" + sixtyFourHex, wantErr: true},
		{name: "empty", input: "oci://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseReference(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseReference(%q) expected error, got %+v", tt.input, ref)
				}
				if !apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest) {
					t.Errorf("error code = %s, want %s", apperrors.CodeOf(err), apperrors.ErrCodeInvalidRequest)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReference(%q) unexpected error: %v", tt.input, err)
			}
			if ref.Registry != tt.wantReg {
				t.Errorf("Registry = %q, want %q", ref.Registry, tt.wantReg)
			}
			if ref.Repository != tt.wantRepo {
				t.Errorf("Repository = %q, want %q", ref.Repository, tt.wantRepo)
			}
			if ref.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", ref.Tag, tt.wantTag)
			}
		})
	}
}

const sixtyFourHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestIsURI(t *testing.T) {
	if !IsURI("oci://ghcr.io/a/b") {
		t.Error("expected oci:// to be detected")
	}
	for _, s := range []string{"", "cm://ns/name", "./out.json", "ghcr.io/a/b"} {
		if IsURI(s) {
			t.Errorf("IsURI(%q) = true, want false", s)
		}
	}
}

func TestReferenceStrings(t *testing.T) {
	ref := &Reference{Registry: "ghcr.io", Repository: "nvidia/inventory"}

	if got := ref.ImageReference(); got != "ghcr.io/nvidia/inventory" {
		t.Errorf("ImageReference() = %q", got)
	}
	if got := ref.String(); got != "oci://ghcr.io/nvidia/inventory" {
		t.Errorf("String() = %q", got)
	}

	tagged := ref.WithTag("v2")
	if got := tagged.String(); got != "oci://ghcr.io/nvidia/inventory:v2" {
		t.Errorf("String() = %q", got)
	}
	if ref.Tag != "" {
		t.Error("WithTag must not modify the receiver")
	}
}

func TestValidateRegistryReference(t *testing.T) {
	tests := []struct {
		name       string
		registry   string
		repository string
		wantErr    bool
	}{
		{"valid ghcr.io", "ghcr.io", "nvidia/inventory", false},
		{"localhost with port", "localhost:5000", "test/repo", false},
		{"https prefix", "https://ghcr.io", "nvidia/inventory", false},
		{"registry with spaces", "invalid registry", "test/repo", true},
		{"uppercase repository", "ghcr.io", "NVIDIA/Inventory", true},
		{"special chars", "ghcr.io", "test/repo@latest", true},
		{"nested repository", "registry.example.com:5000", "org/team/project", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistryReference(tt.registry, tt.repository)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegistryReference() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
