// Package errors provides the sentinel errors and error types shared by the
// groundwater service. Use errors.Is / errors.As from the standard library to
// inspect them.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes the service distinguishes.
var (
	// ErrNotFound indicates no record exists for a resolved location.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput indicates the caller sent malformed input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an external call exceeded its deadline.
	ErrTimeout = errors.New("operation timed out")

	// ErrUpstreamUnavailable indicates an external collaborator (LLM provider,
	// geocoding API, object storage) failed or is not configured.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNotConfigured indicates an optional integration has no credentials.
	ErrNotConfigured = errors.New("not configured")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err is or wraps ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUpstreamUnavailable reports whether err is or wraps ErrUpstreamUnavailable.
func IsUpstreamUnavailable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

// ValidationError represents a rejected field in a dataset row or request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// UpstreamError describes a failed call to an external service.
type UpstreamError struct {
	Service    string // geocode, gemini, groq, r2
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream %s error (status=%d): %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s error: %v", e.Service, e.Err)
}

// Unwrap returns both the cause and ErrUpstreamUnavailable so either can be matched.
func (e *UpstreamError) Unwrap() []error {
	return []error{e.Err, ErrUpstreamUnavailable}
}

// NewUpstreamError creates a new upstream error.
func NewUpstreamError(service string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{
		Service:    service,
		StatusCode: statusCode,
		Err:        err,
	}
}
