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
	"strconv"
	"strings"

	"github.com/NVIDIA/node-inventory/pkg/collector/file"
	"github.com/NVIDIA/node-inventory/pkg/errors"
)

// Status labels read by ParseRecord. Matching is exact and case-sensitive.
const (
	labelName    = "Name"
	labelPID     = "Pid"
	labelPPID    = "PPid"
	labelThreads = "Threads"
)

var statusParser = file.NewParser()

// ParseRecord parses the content of a /proc/<pid>/status resource.
// Unrecognized labels are ignored. Pid, PPid and Threads must be non-negative
// integers; a missing Pid is malformed as well. Threads defaults to 1.
// The returned record has no command line and no children.
func ParseRecord(raw string) (Record, error) {
	rec := Record{Threads: 1}
	seenPID := false

	for _, line := range statusParser.Split(raw) {
		label, value, ok := file.SplitLabel(line)
		if !ok {
			continue
		}

		switch label {
		case labelName:
			rec.Name = value
		case labelPID:
			n, err := parseCount(label, value)
			if err != nil {
				return Record{}, err
			}
			rec.PID = n
			seenPID = true
		case labelPPID:
			n, err := parseCount(label, value)
			if err != nil {
				return Record{}, err
			}
			rec.ParentPID = n
		case labelThreads:
			n, err := parseCount(label, value)
			if err != nil {
				return Record{}, err
			}
			rec.Threads = n
		}
	}

	if !seenPID {
		return Record{}, errors.New(errors.ErrCodeMalformedRecord, "status record has no Pid")
	}

	return rec, nil
}

func parseCount(label, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.WrapWithContext(errors.ErrCodeMalformedRecord,
			"status field is not an integer", err,
			map[string]any{"label": label, "value": value})
	}
	if n < 0 {
		return 0, errors.NewWithContext(errors.ErrCodeMalformedRecord,
			"status field is negative",
			map[string]any{"label": label, "value": value})
	}
	return n, nil
}

// ParseCommandLine converts the NUL-delimited content of a cmdline resource
// into a single display line. Arguments are joined by spaces and trailing
// separators are trimmed; an empty resource (kernel threads, zombies) yields "".
func ParseCommandLine(raw []byte) string {
	s := strings.ReplaceAll(string(raw), "\x00", " ")
	return strings.TrimRight(s, " ")
}
