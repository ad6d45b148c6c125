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


package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/NVIDIA/node-inventory/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

const defaultValueKey = "value"

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats lists the accepted --format values.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// ParseFormat validates a user supplied format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "unsupported output format",
			map[string]any{"format": s, "supported": SupportedFormats()})
	}
	return f, nil
}

func orJSON(f Format) Format {
	if f.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", f)
		return FormatJSON
	}
	return f
}

// Writer serializes values to an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter returns a Writer for output, or stdout when output is nil.
// Unknown formats fall back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: orJSON(format), output: output}
}

// NewStdoutWriter returns a Writer for stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Serializer for path: stdout when empty, a
// ConfigMapWriter for cm:// URIs, a file otherwise. When the destination
// cannot be opened it logs the failure and falls back to stdout.
func NewFileWriterOrStdout(format Format, path string) Serializer {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return NewStdoutWriter(format)
	}

	if strings.HasPrefix(trimmed, ConfigMapURIScheme) {
		namespace, name, err := parseConfigMapURI(trimmed)
		if err != nil {
			slog.Error("invalid ConfigMap URI, falling back to stdout", "error", err, "uri", trimmed)
			return NewStdoutWriter(format)
		}
		return NewConfigMapWriter(namespace, name, format)
	}

	file, err := os.Create(trimmed)
	if err != nil {
		slog.Error("failed to create output file, falling back to stdout", "error", err, "path", trimmed)
		return NewStdoutWriter(format)
	}

	return &Writer{format: orJSON(format), output: file, closer: file}
}

// Close closes the underlying file, if any. Safe to call more than once.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize writes v in the writer's format.
func (w *Writer) Serialize(_ context.Context, v any) error {
	content, err := encode(w.format, v)
	if err != nil {
		return err
	}
	if _, err := w.output.Write(content); err != nil {
		return fmt.Errorf("failed to write %s output: %w", w.format, err)
	}
	return nil
}

// Marshal encodes v in format. Unknown formats fall back to JSON.
func Marshal(format Format, v any) ([]byte, error) {
	return encode(orJSON(format), v)
}

func encode(format Format, v any) ([]byte, error) {
	switch format {
	case FormatJSON:
		content, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return append(content, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTable:
		return encodeTable(v)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func encodeTable(v any) ([]byte, error) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if t, ok := v.(Table); ok {
		header := t.TableHeader()
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		for _, row := range t.TableRows() {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	} else {
		flat := make(map[string]any)
		flattenValue(flat, reflect.ValueOf(v), "")
		if len(flat) == 0 {
			return []byte("<empty>\n"), nil
		}

		keys := make([]string, 0, len(flat))
		for k := range flat {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		fmt.Fprintln(tw, "FIELD\tVALUE")
		for _, k := range keys {
			fmt.Fprintf(tw, "%s\t%v\n", k, flat[k])
		}
	}

	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush table: %w", err)
	}
	return buf.Bytes(), nil
}

func flattenValue(out map[string]any, val reflect.Value, prefix string) {
	if !val.IsValid() {
		return
	}

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			if prefix != "" {
				out[prefix] = nil
			}
			return
		}
		val = val.Elem()
	}

	//nolint:exhaustive // scalars fall through to default
	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := range val.NumField() {
			if f := typ.Field(i); f.IsExported() {
				flattenValue(out, val.Field(i), joinKey(prefix, f.Name))
			}
		}
	case reflect.Map:
		for _, k := range val.MapKeys() {
			flattenValue(out, val.MapIndex(k), joinKey(prefix, fmt.Sprint(k.Interface())))
		}
	case reflect.Slice, reflect.Array:
		for i := range val.Len() {
			flattenValue(out, val.Index(i), joinKey(prefix, fmt.Sprintf("[%d]", i)))
		}
	default:
		if prefix == "" {
			prefix = defaultValueKey
		}
		out[prefix] = val.Interface()
	}
}

func joinKey(prefix, suffix string) string {
	switch {
	case prefix == "":
		return suffix
	case suffix == "":
		return prefix
	default:
		return prefix + "." + suffix
	}
}
