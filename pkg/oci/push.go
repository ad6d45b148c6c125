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
	"crypto/tls"
	"net/http"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/memory"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	apperrors "github.com/NVIDIA/node-inventory/pkg/errors"
)

// ArtifactType identifies node inventory snapshots in a registry.
const ArtifactType = "application/vnd.nvidia.ninv.snapshot.v1"

// PushOptions configures Push.
type PushOptions struct {
	// Reference is the destination; its Tag is required.
	Reference *Reference
	// MediaType of the single layer, e.g. application/json.
	MediaType string
	// FileName is recorded as the layer title so pulled artifacts unpack
	// to a named file.
	FileName string
	// Annotations are added to the manifest.
	Annotations map[string]string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Target replaces the remote repository, e.g. with a local store.
	Target oras.Target
}

// PushResult contains the result of a successful push.
type PushResult struct {
	// Digest is the manifest digest.
	Digest string
	// Reference is registry/repository:tag.
	Reference string
}

// Push publishes data as a single-layer OCI artifact.
func Push(ctx context.Context, data []byte, opts PushOptions) (*PushResult, error) {
	ref := opts.Reference
	if ref == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required")
	}
	if ref.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required to push OCI artifact")
	}
	if opts.MediaType == "" {
		opts.MediaType = "application/octet-stream"
	}

	// Stage everything in memory; a snapshot is a single small document.
	store := memory.New()

	layer, err := oras.PushBytes(ctx, store, opts.MediaType, data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to stage artifact layer", err)
	}
	if opts.FileName != "" {
		layer.Annotations = map[string]string{ociv1.AnnotationTitle: opts.FileName}
	}

	manifest, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, ArtifactType,
		oras.PackManifestOptions{
			Layers:              []ociv1.Descriptor{layer},
			ManifestAnnotations: opts.Annotations,
		})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to pack manifest", err)
	}
	if err := store.Tag(ctx, manifest, ref.Tag); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest in local store", err)
	}

	dst := opts.Target
	if dst == nil {
		repo, repoErr := remote.NewRepository(stripProtocol(ref.Registry) + "/" + ref.Repository)
		if repoErr != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", repoErr)
		}
		repo.PlainHTTP = opts.PlainHTTP
		repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)
		dst = repo
	}

	desc, err := oras.Copy(ctx, store, ref.Tag, dst, ref.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeTransport, "failed to push artifact to registry", err,
			map[string]any{"reference": ref.ImageReference()})
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: ref.ImageReference(),
	}, nil
}

// createAuthClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, _ := credentials.NewStoreFromDocker(credentials.StoreOptions{})

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{} //nolint:gosec
		}
		transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
