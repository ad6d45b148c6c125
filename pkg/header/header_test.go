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
	"testing"
	"time"
)

func TestInit(t *testing.T) {
	var h Header
	h.SetMetadata("stale", "x")
	h.Init(KindSnapshot, APIVersion, "v0.1.0")

	if h.GetKind() != KindSnapshot || !h.Kind.IsValid() {
		t.Errorf("unexpected kind %q", h.Kind)
	}
	if h.APIVersion != APIVersion {
		t.Errorf("unexpected apiVersion %q", h.APIVersion)
	}
	md := h.GetMetadata()
	if _, ok := md["stale"]; ok {
		t.Error("Init should reset metadata")
	}
	if md["version"] != "v0.1.0" {
		t.Errorf("unexpected version %q", md["version"])
	}
	if _, err := time.Parse(time.RFC3339, md["timestamp"]); err != nil {
		t.Errorf("timestamp is not RFC 3339: %v", err)
	}
}

func TestInitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindSnapshot, APIVersion, "")
	if _, ok := h.Metadata["version"]; ok {
		t.Error("empty version should not be recorded")
	}
	h.SetMetadata("node", "worker-7")
	if h.Metadata["node"] != "worker-7" {
		t.Error("SetMetadata did not store the value")
	}
}

func TestKindIsValid(t *testing.T) {
	if Kind("Recipe").IsValid() {
		t.Error("unknown kind reported valid")
	}
	if KindSnapshot.String() != "Snapshot" {
		t.Errorf("unexpected string %q", KindSnapshot.String())
	}
}
