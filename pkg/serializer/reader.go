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
	"path"
	"strings"

	"github.com/NVIDIA/node-inventory/pkg/k8s/client"
	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// FormatFromPath picks a format from the file extension, defaulting to JSON.
func FormatFromPath(p string) Format {
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".table", ".txt":
		return FormatTable
	default:
		slog.Debug("unknown file extension, defaulting to JSON", "path", p)
		return FormatJSON
	}
}

// Reader decodes JSON or YAML documents.
type Reader struct {
	format Format
	input  io.Reader
}

// NewReader returns a Reader for input. Table format cannot be read back.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	switch {
	case format.IsUnknown():
		return nil, fmt.Errorf("unknown format: %s", format)
	case format == FormatTable:
		return nil, fmt.Errorf("table format does not support deserialization")
	case input == nil:
		return nil, fmt.Errorf("input source is nil")
	}
	return &Reader{format: format, input: input}, nil
}

// Deserialize decodes the next document into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
	return nil
}

// FromFile loads a T from a local file, an http(s) URL or a cm:// URI.
// For files and URLs the format comes from the extension.
func FromFile[T any](ctx context.Context, src string) (*T, error) {
	switch {
	case strings.HasPrefix(src, ConfigMapURIScheme):
		namespace, name, err := parseConfigMapURI(src)
		if err != nil {
			return nil, err
		}
		kube, err := defaultKubeClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		return FromConfigMap[T](ctx, kube, namespace, name)

	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		data, err := NewHttpReader().ReadWithContext(ctx, src)
		if err != nil {
			return nil, err
		}
		return decodeAs[T](FormatFromPath(src), bytes.NewReader(data), src)

	default:
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("failed to open %q: %w", src, err)
		}
		defer f.Close()
		return decodeAs[T](FormatFromPath(src), f, src)
	}
}

// FromConfigMap loads a T from the document stored by ConfigMapWriter.
func FromConfigMap[T any](ctx context.Context, kube client.Interface, namespace, name string) (*T, error) {
	cm, err := kube.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := FormatYAML
	if f := Format(cm.Data["format"]); f == FormatJSON || f == FormatYAML {
		format = f
	}

	content, ok := cm.Data[configMapDataPrefix+"."+string(format)]
	if !ok {
		for _, f := range []Format{FormatYAML, FormatJSON} {
			if content, ok = cm.Data[configMapDataPrefix+"."+string(f)]; ok {
				format = f
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("ConfigMap %s/%s has no readable %s.* key", namespace, name, configMapDataPrefix)
	}

	slog.Debug("reading ConfigMap", "namespace", namespace, "name", name, "format", format, "size", len(content))
	return decodeAs[T](format, strings.NewReader(content), ConfigMapURIScheme+namespace+"/"+name)
}

func decodeAs[T any](format Format, input io.Reader, src string) (*T, error) {
	r, err := NewReader(format, input)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", src, err)
	}
	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", src, err)
	}
	return &out, nil
}
