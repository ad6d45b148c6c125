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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/node-inventory/pkg/errors"
)

func strPtr(s string) *string { return &s }

func sampleForest() []Record {
	return BuildForest([]Record{
		{Name: "systemd", PID: 1, Threads: 1, CommandLine: strPtr("/sbin/init splash")},
		{Name: "sshd", PID: 10, ParentPID: 1, Threads: 1, CommandLine: strPtr("/usr/sbin/sshd -D")},
		{Name: "bash", PID: 11, ParentPID: 10, Threads: 1, CommandLine: strPtr("-bash")},
		{Name: "vim", PID: 12, ParentPID: 11, Threads: 1, CommandLine: strPtr("vim notes.md")},
		{Name: "cron", PID: 20, ParentPID: 1, Threads: 1},
		{Name: "kthreadd", PID: 2, Threads: 1, CommandLine: strPtr("")},
	})
}

func TestFilter_Tree(t *testing.T) {
	got, err := Filter(sampleForest(), "VIM")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "systemd", got[0].Name)
	require.Len(t, got[0].Children, 1)
	assert.Equal(t, "sshd", got[0].Children[0].Name)
	bash := got[0].Children[0].Children
	require.Len(t, bash, 1)
	require.Len(t, bash[0].Children, 1)
	assert.Equal(t, "vim", bash[0].Children[0].Name)
}

func TestFilter_MatchesCommandLine(t *testing.T) {
	got, err := Filter(Flatten(sampleForest()), `notes\.md`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 12, got[0].PID)
}

func TestFilter_FlatKeepsOnlyMatches(t *testing.T) {
	got, err := Filter(Flatten(sampleForest()), "^s")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 10}, pids(got))
}

func TestFilter_EmptyPattern(t *testing.T) {
	forest := sampleForest()
	got, err := Filter(forest, "")
	require.NoError(t, err)
	assert.Equal(t, forest, got)
}

func TestFilter_NoMatch(t *testing.T) {
	got, err := Filter(sampleForest(), "does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilter_InvalidPattern(t *testing.T) {
	_, err := Filter(sampleForest(), "([")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestFilter_Containment(t *testing.T) {
	forest := sampleForest()
	all := make(map[int]bool)
	for _, r := range Flatten(forest) {
		all[r.PID] = true
	}

	for _, pattern := range []string{"", "s", "bash", "cron|vim", "^k", "init"} {
		t.Run(pattern, func(t *testing.T) {
			m, err := NewMatcher(pattern)
			require.NoError(t, err)

			var check func(nodes []Record) bool
			check = func(nodes []Record) bool {
				retained := false
				for _, n := range nodes {
					assert.True(t, all[n.PID], "pid %d not in unfiltered view", n.PID)
					descendant := check(n.Children)
					assert.True(t, m.Match(n) || descendant, "pid %d retained without reason", n.PID)
					retained = true
				}
				return retained
			}
			check(m.Apply(forest))
		})
	}
}

func TestMatcher_Nil(t *testing.T) {
	var m *Matcher
	assert.True(t, m.Match(Record{Name: "x"}))
	assert.Equal(t, "", m.Pattern())

	m, err := NewMatcher("ssh")
	require.NoError(t, err)
	assert.Equal(t, "ssh", m.Pattern())
}
