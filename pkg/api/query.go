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


package api

import (
	"net/http"
	"strings"

	"github.com/NVIDIA/node-inventory/pkg/errors"
	"github.com/NVIDIA/node-inventory/pkg/monitor"
	"github.com/NVIDIA/node-inventory/pkg/process"
)

// ParseProcessQuery reads the view, search and sort parameters.
func ParseProcessQuery(r *http.Request) (monitor.Query, error) {
	var q monitor.Query
	values := r.URL.Query()

	switch view := strings.ToLower(strings.TrimSpace(values.Get("view"))); view {
	case "", monitor.ViewFlat:
	case monitor.ViewTree:
		q.Tree = true
	default:
		return monitor.Query{}, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unsupported view",
			map[string]any{"view": view, "supported": []string{monitor.ViewFlat, monitor.ViewTree}})
	}

	if values.Has("search") {
		search := values.Get("search")
		q.Search = &search
	}

	if s := values.Get("sort"); s != "" {
		key, err := process.ParseSortKey(s)
		if err != nil {
			return monitor.Query{}, err
		}
		q.SortKey = key
	}

	return q, nil
}
