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

// Package node reads the Kubernetes view of the node an inventory runs on.
package node

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/NVIDIA/node-inventory/pkg/errors"
	"github.com/NVIDIA/node-inventory/pkg/k8s/client"
	"github.com/NVIDIA/node-inventory/pkg/version"
)

const (
	RoleLabelPrefix = "node-role.kubernetes.io/"
	RoleLabel       = "nodeRole"
	RoleUndefined   = "undefined"
)

// nameEnv lists the variables consulted by Name, in order. HOSTNAME is the
// pod name inside a pod, so it only helps on host network deployments.
var nameEnv = []string{"NODE_NAME", "KUBERNETES_NODE_NAME", "HOSTNAME"}

// Info is the cluster side description of a node.
type Info struct {
	Name             string           `json:"name" yaml:"name"`
	Role             string           `json:"role" yaml:"role"`
	KubeletVersion   string           `json:"kubeletVersion,omitempty" yaml:"kubeletVersion,omitempty"`
	Kubelet          *version.Version `json:"kubelet,omitempty" yaml:"kubelet,omitempty"`
	ContainerRuntime string           `json:"containerRuntime,omitempty" yaml:"containerRuntime,omitempty"`
	OSImage          string           `json:"osImage,omitempty" yaml:"osImage,omitempty"`
	ProviderID       string           `json:"providerID,omitempty" yaml:"providerID,omitempty"`
	HostID           string           `json:"hostID,omitempty" yaml:"hostID,omitempty"`
	InternalIP       string           `json:"internalIP,omitempty" yaml:"internalIP,omitempty"`
	Created          time.Time        `json:"created" yaml:"created"`
}

// Name returns the node name from the environment, typically injected
// through the downward API, or "" when none is set.
func Name() string {
	for _, key := range nameEnv {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// Get reads node name from the API server. An empty name falls back to Name.
func Get(ctx context.Context, kube client.Interface, name string) (*Info, error) {
	if name == "" {
		name = Name()
	}
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			"node name not provided and not found in environment (set NODE_NAME)")
	}

	n, err := kube.CoreV1().Nodes().Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		code := errors.ErrCodeTransport
		if apierrors.IsNotFound(err) {
			code = errors.ErrCodeNotFound
		}
		return nil, errors.WrapWithContext(code, "failed to get node", err,
			map[string]any{"node": name})
	}

	info := &Info{
		Name:             n.Name,
		Role:             ParseRole(n),
		KubeletVersion:   n.Status.NodeInfo.KubeletVersion,
		ContainerRuntime: n.Status.NodeInfo.ContainerRuntimeVersion,
		OSImage:          n.Status.NodeInfo.OSImage,
		ProviderID:       n.Spec.ProviderID,
		InternalIP:       address(n, corev1.NodeInternalIP),
		Created:          n.CreationTimestamp.UTC(),
	}
	if v, err := version.Parse(info.KubeletVersion); err == nil {
		info.Kubelet = &v
	}
	if info.ProviderID != "" {
		id, err := parseHostID(info.ProviderID)
		if err != nil {
			slog.Debug("unparsed providerID", "node", n.Name, "providerID", info.ProviderID, "error", err)
		}
		info.HostID = id
	}
	return info, nil
}

// ParseRole returns the role from node-role.kubernetes.io/<role> labels,
// then from the nodeRole label, else RoleUndefined.
func ParseRole(n *corev1.Node) string {
	for k := range n.Labels {
		if role, ok := strings.CutPrefix(k, RoleLabelPrefix); ok && role != "" {
			return role
		}
	}
	for k, v := range n.Labels {
		if strings.EqualFold(k, RoleLabel) {
			return v
		}
	}
	return RoleUndefined
}

// parseHostID returns the last path segment of a providerID such as
// "aws:///us-east-1a/i-0abc" or "gce://project/zone/instance".
func parseHostID(providerID string) (string, error) {
	scheme, rest, ok := strings.Cut(providerID, "://")
	if !ok || scheme == "" {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"invalid providerID format", map[string]any{"providerID": providerID})
	}
	rest = strings.TrimRight(rest, "/")
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		rest = rest[i+1:]
	}
	if rest == "" {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"providerID has no host id", map[string]any{"providerID": providerID})
	}
	return rest, nil
}

func address(n *corev1.Node, t corev1.NodeAddressType) string {
	for _, a := range n.Status.Addresses {
		if a.Type == t {
			return a.Address
		}
	}
	return ""
}
