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


package server

import (
	"net/http"
	"strings"
)

// DefaultAPIVersion is served when the client does not ask for one.
const DefaultAPIVersion = "v1"

const vendorMediaPrefix = "application/vnd.nvidia.ninv."

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion reads a vendor media type such as
// application/vnd.nvidia.ninv.v1+json from the Accept header.
func negotiateAPIVersion(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		media := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		rest, ok := strings.CutPrefix(media, vendorMediaPrefix)
		if !ok {
			continue
		}
		version, _, _ := strings.Cut(rest, "+")
		if isValidAPIVersion(version) {
			return version
		}
	}
	return DefaultAPIVersion
}

func isValidAPIVersion(version string) bool {
	return supportedAPIVersions[version]
}

// SetAPIVersionHeader reports the negotiated version to the client.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}

// APIVersionFrom returns the version negotiated for r, or the default.
func APIVersionFrom(r *http.Request) string {
	if v, ok := r.Context().Value(contextKeyAPIVersion).(string); ok && v != "" {
		return v
	}
	return DefaultAPIVersion
}
