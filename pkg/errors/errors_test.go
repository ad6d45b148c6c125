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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("timeout")
	ctx := map[string]interface{}{
		"path": "/org/freedesktop/systemd1/unit",
		"node": "node-1",
	}

	err := WrapWithContext(ErrCodeTimeout, "unit introspection failed", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["path"] != "/org/freedesktop/systemd1/unit" {
		t.Errorf("expected path to be the unit root")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeUnauthorized,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeUnavailable,
		ErrCodeTransport,
		ErrCodeFormat,
		ErrCodeMalformedRecord,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "plain error",
			err:  errors.New("plain"),
			want: "",
		},
		{
			name: "structured error",
			err:  New(ErrCodeFormat, "bad xml"),
			want: ErrCodeFormat,
		},
		{
			name: "structured error wrapped by fmt",
			err:  fmt.Errorf("refresh: %w", Wrap(ErrCodeTransport, "dial", errors.New("refused"))),
			want: ErrCodeTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
			if tt.want != "" && !IsCode(tt.err, tt.want) {
				t.Errorf("IsCode(%v, %q) = false, want true", tt.err, tt.want)
			}
		})
	}
}
