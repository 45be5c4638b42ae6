// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for validation and unsupported cases. These enable callers
// to detect specific conditions via errors.Is/As while keeping messages
// consistent.
var (
	ErrNoHost       = errors.New("host is not set")
	ErrUnauthorized = errors.New("authentication required")
)

// Error is a non-2xx response from the blog API, carrying the status code and
// the "detail" message FastAPI puts in the body.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// newError builds an *Error from a response body. The body is expected to be
// {"detail": "..."} but anything else degrades to a bare status error.
func newError(statusCode int, body []byte) *Error {
	var payload struct {
		Detail string `json:"detail"`
	}
	// Validation errors carry a structured detail; keep the raw body then.
	if err := json.Unmarshal(body, &payload); err != nil || payload.Detail == "" {
		if len(body) > 0 && payload.Detail == "" {
			payload.Detail = string(body)
		}
	}
	return &Error{StatusCode: statusCode, Detail: payload.Detail}
}

// ErrorContext carries request context used to build friendly messages.
type ErrorContext struct {
	Host      string
	Operation string
	Resource  string
}

// Friendly wraps common API failures with actionable messages. Unknown errors
// pass through wrapped with the operation name.
func Friendly(err error, ctxErr ErrorContext) error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("failed to %s on %s: not logged in or session expired (run 'blogctl login'): %w",
				ctxErr.Operation, ctxErr.Host, err)
		case http.StatusForbidden:
			return fmt.Errorf("failed to %s on %s: you don't own this %s: %w",
				ctxErr.Operation, ctxErr.Host, ctxErr.Resource, err)
		case http.StatusNotFound:
			return fmt.Errorf("failed to %s on %s: %s not found: %w",
				ctxErr.Operation, ctxErr.Host, ctxErr.Resource, err)
		}
	}

	return fmt.Errorf("failed to %s on %s: %w", ctxErr.Operation, ctxErr.Host, err)
}
