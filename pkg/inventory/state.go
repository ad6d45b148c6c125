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
	"context"
	"log/slog"
	"time"

	"github.com/NVIDIA/node-inventory/pkg/collector"
	"github.com/NVIDIA/node-inventory/pkg/errors"
	"github.com/NVIDIA/node-inventory/pkg/process"
)

// views is one consistent set of derived views.
type views struct {
	flat           []process.Record
	forest         []process.Record
	filteredFlat   []process.Record
	filteredForest []process.Record
}

// View is a deep copy of the state at one point in time.
type View struct {
	Generation     uint64           `json:"generation" yaml:"generation"`
	CollectedAt    time.Time        `json:"collectedAt" yaml:"collectedAt"`
	SortKey        process.SortKey  `json:"sortKey" yaml:"sortKey"`
	SearchPattern  string           `json:"searchPattern,omitempty" yaml:"searchPattern,omitempty"`
	Flat           []process.Record `json:"flat" yaml:"flat"`
	Forest         []process.Record `json:"forest" yaml:"forest"`
	FilteredFlat   []process.Record `json:"filteredFlat" yaml:"filteredFlat"`
	FilteredForest []process.Record `json:"filteredForest" yaml:"filteredForest"`
}

// State holds the process inventory. The zero value is not usable; create
// one with NewState.
type State struct {
	source  collector.Collector[process.Record]
	key     process.SortKey
	matcher *process.Matcher
	now     func() time.Time

	generation  uint64
	collectedAt time.Time
	v           views
}

// Option configures a State.
type Option func(*State)

// WithSortKey sets the initial sort key. Default is process.DefaultSortKey.
func WithSortKey(key process.SortKey) Option {
	return func(s *State) {
		s.key = key
	}
}

// WithMatcher sets the initial search pattern.
func WithMatcher(m *process.Matcher) Option {
	return func(s *State) {
		if m != nil {
			s.matcher = m
		}
	}
}

// NewState creates an empty state reading from source.
func NewState(source collector.Collector[process.Record], opts ...Option) *State {
	s := &State{
		source:  source,
		key:     process.DefaultSortKey,
		matcher: &process.Matcher{},
		now:     time.Now,
		v: views{
			flat:           []process.Record{},
			forest:         []process.Record{},
			filteredFlat:   []process.Record{},
			filteredForest: []process.Record{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh collects a new flat list, rebuilds the forest, applies the current
// pattern and key, and replaces all four views at once. On error the
// previous views are kept.
func (s *State) Refresh(ctx context.Context) error {
	start := time.Now()

	flat, err := s.source.Collect(ctx)
	if err != nil {
		refreshTotal.WithLabelValues("error").Inc()
		return errors.Wrap(errors.ErrCodeInternal, "failed to collect processes", err)
	}

	forest := process.BuildForest(flat)
	next := views{
		flat:           process.Sort(flat, s.key),
		forest:         process.Sort(forest, s.key),
		filteredFlat:   process.Sort(s.matcher.Apply(flat), s.key),
		filteredForest: process.Sort(s.matcher.Apply(forest), s.key),
	}

	s.v = next
	s.generation++
	s.collectedAt = s.now()

	refreshDuration.Observe(time.Since(start).Seconds())
	refreshTotal.WithLabelValues("success").Inc()
	s.recordGauges()

	slog.Debug("inventory refreshed",
		slog.Uint64("generation", s.generation),
		slog.Int("records", len(flat)),
		slog.Int("roots", len(forest)),
		slog.Duration("took", time.Since(start)))

	return nil
}

// SetSortKey re-sorts the four views by key without collecting. An
// unsupported key returns an INVALID_REQUEST error and changes nothing.
func (s *State) SetSortKey(key process.SortKey) error {
	if !key.Valid() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "unsupported sort key",
			map[string]any{"key": string(key)})
	}

	s.key = key
	s.v = views{
		flat:           process.Sort(s.v.flat, key),
		forest:         process.Sort(s.v.forest, key),
		filteredFlat:   process.Sort(s.v.filteredFlat, key),
		filteredForest: process.Sort(s.v.filteredForest, key),
	}
	return nil
}

// SetSearchPattern recomputes the filtered views from the current flat list
// and forest and sorts them by the current key. An invalid pattern returns an
// INVALID_REQUEST error and leaves the pattern and views unchanged.
func (s *State) SetSearchPattern(pattern string) error {
	m, err := process.NewMatcher(pattern)
	if err != nil {
		return err
	}

	s.matcher = m
	s.v = views{
		flat:           s.v.flat,
		forest:         s.v.forest,
		filteredFlat:   process.Sort(m.Apply(s.v.flat), s.key),
		filteredForest: process.Sort(m.Apply(s.v.forest), s.key),
	}
	s.recordGauges()

	return nil
}

// SortKey returns the current sort key.
func (s *State) SortKey() process.SortKey {
	return s.key
}

// SearchPattern returns the current search pattern.
func (s *State) SearchPattern() string {
	return s.matcher.Pattern()
}

// Generation returns the number of successful refreshes.
func (s *State) Generation() uint64 {
	return s.generation
}

// View returns a deep copy of the current views.
func (s *State) View() View {
	return View{
		Generation:     s.generation,
		CollectedAt:    s.collectedAt,
		SortKey:        s.key,
		SearchPattern:  s.matcher.Pattern(),
		Flat:           process.CloneAll(s.v.flat),
		Forest:         process.CloneAll(s.v.forest),
		FilteredFlat:   process.CloneAll(s.v.filteredFlat),
		FilteredForest: process.CloneAll(s.v.filteredForest),
	}
}

func (s *State) recordGauges() {
	viewRecords.WithLabelValues("flat").Set(float64(len(s.v.flat)))
	viewRecords.WithLabelValues("forest").Set(float64(process.Count(s.v.forest)))
	viewRecords.WithLabelValues("filtered_flat").Set(float64(len(s.v.filteredFlat)))
	viewRecords.WithLabelValues("filtered_forest").Set(float64(process.Count(s.v.filteredForest)))
}
