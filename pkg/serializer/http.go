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
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/NVIDIA/node-inventory/pkg/defaults"
)

// RespondJSON writes data as a JSON response. The body is encoded before the
// status line is sent.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

// HttpReaderUserAgent is sent with every request made by HttpReader.
const HttpReaderUserAgent = "ninv/1.0"

// maxRemoteDocumentSize caps documents fetched over HTTP.
const maxRemoteDocumentSize = 16 << 20

// HttpReaderOption configures an HttpReader.
type HttpReaderOption func(*HttpReader)

// HttpReader fetches remote documents.
type HttpReader struct {
	UserAgent string
	Client    *http.Client
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) HttpReaderOption {
	return func(r *HttpReader) {
		r.UserAgent = userAgent
	}
}

// WithTotalTimeout bounds a whole request including the body read.
func WithTotalTimeout(timeout time.Duration) HttpReaderOption {
	return func(r *HttpReader) {
		if timeout > 0 {
			r.Client.Timeout = timeout
		}
	}
}

// WithClient replaces the HTTP client.
func WithClient(client *http.Client) HttpReaderOption {
	return func(r *HttpReader) {
		if client != nil {
			r.Client = client
		}
	}
}

// NewHttpReader returns an HttpReader with pooled, TLS 1.2+ transport.
func NewHttpReader(options ...HttpReaderOption) *HttpReader {
	r := &HttpReader{
		UserAgent: HttpReaderUserAgent,
		Client: &http.Client{
			Timeout:   defaults.HTTPClientTimeout,
			Transport: newDefaultHTTPTransport(),
		},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func newDefaultHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: defaults.HTTPTLSHandshakeTimeout,
		IdleConnTimeout:     defaults.HTTPIdleConnTimeout,
		MaxIdleConns:        10,
		ForceAttemptHTTP2:   true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// ReadWithContext fetches url and returns the body of a 200 response.
func (r *HttpReader) ReadWithContext(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", r.UserAgent)

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed for %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	if len(data) > maxRemoteDocumentSize {
		return nil, fmt.Errorf("document at %s exceeds %d bytes", url, maxRemoteDocumentSize)
	}
	return data, nil
}
