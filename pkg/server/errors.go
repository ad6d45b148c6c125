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


package server

import (
	stderrors "errors"
	"maps"
	"net/http"
	"time"

	"github.com/NVIDIA/node-inventory/pkg/errors"
	"github.com/NVIDIA/node-inventory/pkg/serializer"
	"github.com/google/uuid"
)

// ErrorResponse is the JSON document returned for every failed request.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, status int,
	code errors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, status, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps err to an ErrorResponse. A StructuredError supplies
// the code, message and context; anything else is reported as INTERNAL with
// fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, extraDetails map[string]any) {

	var se *errors.StructuredError
	if stderrors.As(err, &se) && se != nil {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			if details == nil {
				details = make(map[string]any, 1)
			}
			details["error"] = se.Cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
			retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(nil, extraDetails)
	if err != nil {
		if details == nil {
			details = make(map[string]any, 1)
		}
		details["error"] = err.Error()
	}
	WriteError(w, r, http.StatusInternalServerError, errors.ErrCodeInternal,
		fallbackMessage, true, details)
}

// HTTPStatusFromCode returns the HTTP status for an error code.
func HTTPStatusFromCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeTransport, errors.ErrCodeFormat:
		// the failure is on the bus side, not in this process
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code errors.ErrorCode) bool {
	switch code {
	case errors.ErrCodeTimeout,
		errors.ErrCodeUnavailable,
		errors.ErrCodeRateLimitExceeded,
		errors.ErrCodeInternal,
		errors.ErrCodeTransport:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with b layered over a, or nil if both
// are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}
