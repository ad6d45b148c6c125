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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ninv_unit_refresh_duration_seconds",
			Help:    "Time taken to introspect systemd units and read their properties",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	refreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ninv_unit_refresh_total",
			Help: "Total number of unit refresh attempts",
		},
		[]string{"status"}, // success or error
	)

	unitCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ninv_units",
			Help: "Number of units in the last successful refresh",
		},
	)
)
