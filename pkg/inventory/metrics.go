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

package inventory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ninv_inventory_refresh_duration_seconds",
			Help:    "Time taken to collect processes and rebuild all views",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	refreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ninv_inventory_refresh_total",
			Help: "Total number of inventory refresh attempts",
		},
		[]string{"status"}, // success or error
	)

	viewRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ninv_inventory_view_records",
			Help: "Number of records in each inventory view, descendants included",
		},
		[]string{"view"}, // flat, forest, filtered_flat, filtered_forest
	)
)
