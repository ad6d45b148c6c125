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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"github.com/NVIDIA/node-inventory/pkg/header"
	"github.com/NVIDIA/node-inventory/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap destinations: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// configMapDataPrefix names the data key holding the document,
	// suffixed with the format extension (inventory.json, inventory.yaml).
	configMapDataPrefix = "inventory"

	configMapFieldManager = "ninv"
)

// KubeClientFunc returns the client used for ConfigMap access.
type KubeClientFunc func() (client.Interface, error)

func defaultKubeClient() (client.Interface, error) {
	c, _, err := client.GetKubeClient()
	return c, err
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithKubeClient sets the Kubernetes client instead of the shared one.
func WithKubeClient(c client.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.kube = func() (client.Interface, error) { return c, nil }
	}
}

// ConfigMapWriter creates or updates a ConfigMap holding one document.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	kube      KubeClientFunc
}

// NewConfigMapWriter returns a writer for namespace/name.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    orJSON(format),
		kube:      defaultKubeClient,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func formatExtension(f Format) string {
	if f == FormatTable {
		return "txt"
	}
	return string(f)
}

// Serialize applies the ConfigMap with server-side apply. Data keys:
//
//	inventory.{json|yaml|txt}  the document
//	format                     the format used
//	timestamp                  RFC 3339 time taken from the value header, or now
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	kube, err := w.kube()
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	content, err := encode(w.format, v)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	kind := header.KindSnapshot.String()
	version := "unknown"
	timestamp := time.Now().UTC().Format(time.RFC3339)
	if h, ok := v.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		if k := h.GetKind(); k != "" {
			kind = k.String()
		}
		md := h.GetMetadata()
		if s := md["version"]; s != "" {
			version = s
		}
		if s := md["timestamp"]; s != "" {
			timestamp = s
		}
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "node-inventory",
			"app.kubernetes.io/component": strings.ToLower(kind),
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			configMapDataPrefix + "." + formatExtension(w.format): string(content),
			"format":    string(w.format),
			"timestamp": timestamp,
		})

	slog.Info("applying ConfigMap", "namespace", w.namespace, "name", w.name, "format", w.format)

	_, err = kube.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: configMapFieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	rest, ok := strings.CutPrefix(uri, ConfigMapURIScheme)
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: must start with %s", uri, ConfigMapURIScheme)
	}

	namespace, name, ok = strings.Cut(rest, "/")
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: expected %snamespace/name", uri, ConfigMapURIScheme)
	}
	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)

	if namespace == "" || name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: namespace and name are required", uri)
	}
	if strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: name cannot contain '/'", uri)
	}
	return namespace, name, nil
}
