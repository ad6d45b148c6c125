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

package file

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// Options for configuring the Parser.
type Option func(*Parser)

// Parser splits kernel text resources into entries with customizable settings.
type Parser struct {
	delimiter    string
	maxSize      int
	skipComments bool
}

// WithDelimiter sets the delimiter used to split entries in the content.
// Default is newline ("\n"); "\n\n" splits blank-line separated blocks.
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the maximum size (in bytes) of a file read by GetLines.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether entries starting with "#" are dropped.
// Default is false; kernel resources carry no comments.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// NewParser creates a new parser with the provided options.
// Default settings: newline delimiter ("\n"), 1MB max file size, comments kept.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter: "\n",
		maxSize:   1 << 20, // 1MB default
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Split splits content by the configured delimiter and returns the non-empty,
// whitespace-trimmed entries in their original order.
func (p *Parser) Split(content string) []string {
	parts := strings.Split(content, p.delimiter)

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}

		if p.skipComments && strings.HasPrefix(clean, "#") {
			continue
		}

		result = append(result, clean)
	}

	return result
}

// GetLines reads the file at the given path and splits its content into
// entries based on the configured delimiter.
// An error is returned if the file cannot be read, exceeds the maximum size,
// or contains invalid UTF-8 content.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	// procfs reports a zero size on stat, so the limit is checked after reading
	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	lines := p.Split(string(b))
	slog.Debug("read entries from file", slog.String("path", path), slog.Int("count", len(lines)))

	return lines, nil
}

// SplitLabel splits a "Label: value" line. The label is the text before the
// first colon and the value is the text after the last colon, both trimmed.
// ok is false when the line has no colon.
func SplitLabel(line string) (label, value string, ok bool) {
	first := strings.IndexByte(line, ':')
	if first < 0 {
		return "", "", false
	}
	last := strings.LastIndexByte(line, ':')

	return strings.TrimSpace(line[:first]), strings.TrimSpace(line[last+1:]), true
}
