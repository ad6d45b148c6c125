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

package process

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	skipReasonVanished  = "vanished"
	skipReasonMalformed = "malformed"
)

var (
	recordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ninv_process_records_skipped_total",
			Help: "Process and thread records skipped during collection",
		},
		[]string{"reason"}, // vanished or malformed
	)

	collectDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ninv_process_collect_duration_seconds",
			Help:    "Time taken to scan procfs for process and thread records",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)
)
