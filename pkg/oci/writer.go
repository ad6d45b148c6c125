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


package oci

import (
	"context"
	"log/slog"
	"time"

	oras "oras.land/oras-go/v2"

	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"github.com/NVIDIA/node-inventory/pkg/serializer"
)

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPlainHTTP talks to the registry over HTTP.
func WithPlainHTTP(plain bool) WriterOption {
	return func(w *Writer) {
		w.opts.PlainHTTP = plain
	}
}

// WithInsecureTLS skips registry certificate verification.
func WithInsecureTLS(insecure bool) WriterOption {
	return func(w *Writer) {
		w.opts.InsecureTLS = insecure
	}
}

// WithTarget pushes into t instead of the remote repository.
func WithTarget(t oras.Target) WriterOption {
	return func(w *Writer) {
		w.opts.Target = t
	}
}

// WithVersion records the producing tool version on the manifest.
func WithVersion(version string) WriterOption {
	return func(w *Writer) {
		w.version = version
	}
}

// Writer is a serializer.Serializer that publishes each value as an OCI
// artifact. Table output is not meaningful in a registry, so it is stored as
// JSON.
type Writer struct {
	format  serializer.Format
	version string
	opts    PushOptions
	result  *PushResult
}

// NewWriter creates a Writer for ref. A ref without a tag gets DefaultTag.
func NewWriter(ref *Reference, format serializer.Format, opts ...WriterOption) *Writer {
	if ref.Tag == "" {
		ref = ref.WithTag(DefaultTag)
	}
	if format != serializer.FormatYAML {
		format = serializer.FormatJSON
	}

	w := &Writer{format: format}
	w.opts.Reference = ref
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) mediaType() (string, string) {
	if w.format == serializer.FormatYAML {
		return "application/yaml", "inventory.yaml"
	}
	return "application/json", "inventory.json"
}

// Serialize encodes v and pushes it.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	data, err := serializer.Marshal(w.format, v)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	opts := w.opts
	opts.MediaType, opts.FileName = w.mediaType()
	opts.Annotations = map[string]string{
		"org.opencontainers.image.title":   "Node Inventory Snapshot",
		"org.opencontainers.image.vendor":  "NVIDIA",
		"org.opencontainers.image.created": time.Now().UTC().Format(time.RFC3339),
		"org.opencontainers.image.source":  "https://github.com/NVIDIA/node-inventory",
	}
	if w.version != "" {
		opts.Annotations["org.opencontainers.image.version"] = w.version
	}

	slog.Debug("pushing snapshot", "reference", opts.Reference.ImageReference(), "bytes", len(data))

	res, err := Push(ctx, data, opts)
	if err != nil {
		return err
	}
	w.result = res

	slog.Info("snapshot pushed", "reference", res.Reference, "digest", res.Digest)
	return nil
}

// Result returns the last successful push, or nil.
func (w *Writer) Result() *PushResult {
	return w.result
}
