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


package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ninv_monitor_refresh_errors_total",
			Help: "Total number of failed scheduled refreshes",
		},
		[]string{"source"}, // cpus, processes, units
	)

	lastRefresh = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ninv_monitor_last_success_timestamp_seconds",
			Help: "Unix time of the last successful refresh",
		},
		[]string{"source"},
	)

	unitRefreshSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ninv_monitor_unit_refresh_skipped_total",
			Help: "Unit refresh ticks skipped because a refresh was still in flight",
		},
	)
)
