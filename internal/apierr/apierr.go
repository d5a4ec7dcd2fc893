// Package apierr defines the closed error type surfaced to API callers.
// Every terminal error carries a machine-readable code distinct from the
// human-readable message, so clients can branch without string matching.
package apierr

import (
	"errors"
	"net/http"
)

// Error is an API-facing error with an HTTP status and a stable code.
type Error struct {
	Status  int      `json:"-"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attaches the underlying cause without exposing it to API callers.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// BadRequest builds a 400 validation error.
func BadRequest(code, message string, details ...string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: message, Details: details}
}

// Unauthorized builds a 401 authentication error.
func Unauthorized(code, message string, details ...string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: code, Message: message, Details: details}
}

// Unavailable builds a 503 dependency error.
func Unavailable(code, message string, details ...string) *Error {
	return &Error{Status: http.StatusServiceUnavailable, Code: code, Message: message, Details: details}
}

// Internal builds a 500 error with a safe message.
func Internal(code, message string, details ...string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: code, Message: message, Details: details}
}

// From extracts an *Error from err's chain, or nil if none is present.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
