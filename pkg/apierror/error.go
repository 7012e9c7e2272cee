// Package apierror classifies the failure modes the dashboard surfaces to
// operators. No failure is fatal: connectivity errors degrade to a stale
// display, validation errors block the offending write only, and parse
// errors never reach this layer at all (malformed samples are silently
// excluded from aggregates).
package apierror

import "net/http"

// Error is a structured, user-visible failure.
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Validation creates a 400 error for a rejected input.
func Validation(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION",
		Message:    message,
	}
}

// NotFound creates a 404 error for a missing document.
func NotFound(message string) *Error {
	if message == "" {
		message = "resource not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    message,
	}
}

// Conflict creates a 409 error for a rejected re-entrant operation.
func Conflict(message string) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Code:       "CONFLICT",
		Message:    message,
	}
}

// Connectivity creates a 503 error for a store round trip that failed.
func Connectivity(message string) *Error {
	if message == "" {
		message = "document store unavailable"
	}
	return &Error{
		StatusCode: http.StatusServiceUnavailable,
		Code:       "CONNECTIVITY",
		Message:    message,
	}
}

// Internal creates a 500 error for everything else.
func Internal(message string) *Error {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL",
		Message:    message,
	}
}

// From maps an arbitrary error to a structured one, passing through errors
// that are already classified.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*Error); ok {
		return apiErr
	}
	return Internal(err.Error())
}
