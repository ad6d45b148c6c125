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


package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Interface is kubernetes.Interface, aliased so callers can pass fakes.
type Interface = kubernetes.Interface

var (
	clientOnce   sync.Once
	cachedClient *kubernetes.Clientset
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns the process wide client, building it on first call.
// A failure is cached as well.
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		cachedClient, cachedConfig, clientErr = BuildKubeClient("")
	})
	if clientErr != nil {
		return nil, nil, clientErr
	}
	return cachedClient, cachedConfig, nil
}

// resolveKubeconfig returns the kubeconfig path to use, or "" for in-cluster.
func resolveKubeconfig(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// BuildKubeClient creates a new client from kubeconfig, or from discovery
// when kubeconfig is empty.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	var (
		config *rest.Config
		err    error
	)

	path := resolveKubeconfig(kubeconfig)
	if path == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}

	config.UserAgent = "ninv"

	cs, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return cs, config, nil
}
