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
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NVIDIA/node-inventory/pkg/errors"
	"github.com/NVIDIA/node-inventory/pkg/monitor"
	"github.com/NVIDIA/node-inventory/pkg/serializer"
	"github.com/NVIDIA/node-inventory/pkg/server"
)

// Inventory is the read side of the monitor used by the handlers.
type Inventory interface {
	Processes(q monitor.Query) (monitor.ProcessList, error)
	CPUs() (monitor.CPUList, error)
	Units() (monitor.UnitList, error)
	UnitProperties(ctx context.Context, unit string) (map[string]any, error)
}

// Handler serves the inventory routes.
type Handler struct {
	inv Inventory
	cfg monitor.Config
}

// NewHandler creates a Handler. cfg supplies the refresh intervals used as
// cache lifetimes.
func NewHandler(inv Inventory, cfg monitor.Config) *Handler {
	return &Handler{inv: inv, cfg: cfg}
}

// Routes returns the application routes keyed by pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/processes":        h.HandleProcesses,
		"/v1/cpus":             h.HandleCPUs,
		"/v1/units":            h.HandleUnits,
		"/v1/units/properties": h.HandleUnitProperties,
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"method not allowed", false, map[string]any{"method": r.Method})
	return false
}

func respond(w http.ResponseWriter, maxAge time.Duration, v any) {
	w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(maxAge.Seconds())))
	serializer.RespondJSON(w, http.StatusOK, v)
}

// HandleProcesses serves GET /v1/processes.
func (h *Handler) HandleProcesses(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	q, err := ParseProcessQuery(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid query", nil)
		return
	}

	list, err := h.inv.Processes(q)
	if err != nil {
		slog.Debug("process view failed", "error", err)
		server.WriteErrorFromErr(w, r, err, "failed to build process view", nil)
		return
	}

	respond(w, h.cfg.ProcessInterval, list)
}

// HandleCPUs serves GET /v1/cpus.
func (h *Handler) HandleCPUs(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	list, err := h.inv.CPUs()
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to read cpu inventory", nil)
		return
	}

	respond(w, h.cfg.CPUInterval, list)
}

// HandleUnits serves GET /v1/units.
func (h *Handler) HandleUnits(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	list, err := h.inv.Units()
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to read unit inventory", nil)
		return
	}

	respond(w, h.cfg.UnitInterval, list)
}

// UnitProperties is the response body of /v1/units/properties.
type UnitProperties struct {
	Unit       string         `json:"unit" yaml:"unit"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// HandleUnitProperties serves GET /v1/units/properties?unit=<id>. The
// properties are read live from the bus, not from the cached inventory.
func (h *Handler) HandleUnitProperties(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	unit := r.URL.Query().Get("unit")
	if unit == "" {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"unit parameter is required", false, nil)
		return
	}

	props, err := h.inv.UnitProperties(r.Context(), unit)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to read unit properties",
			map[string]any{"unit": unit})
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, UnitProperties{Unit: unit, Properties: props})
}
