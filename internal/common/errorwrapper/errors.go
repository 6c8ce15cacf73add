package errorwrapper

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the application.
var (
	// ErrEmptyResponse indicates the AI backend returned nothing usable.
	ErrEmptyResponse = errors.New("empty response")
	// ErrRequestPending indicates an action was issued while another was
	// still in flight for the same selection.
	ErrRequestPending = errors.New("request already pending")
)

// WrapError wraps an error with additional context information.
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message.
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents a malformed request or configuration value. It
// is raised before any network call and never retried automatically.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// AuthenticationError indicates no credential was available. It is checked
// before issuing a network call so real server-side auth failures are not
// masked.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Message)
}

// NewAuthenticationError creates a new authentication error.
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// TimeoutError indicates the round trip exceeded its deadline. Retryable at
// the caller's discretion with the same request.
type TimeoutError struct {
	Operation string
	Wrapped   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout during %s: %v", e.Operation, e.Wrapped)
}

func (e *TimeoutError) Unwrap() error {
	return e.Wrapped
}

// NewTimeoutError creates a new timeout error.
func NewTimeoutError(operation string, wrapped error) *TimeoutError {
	return &TimeoutError{Operation: operation, Wrapped: wrapped}
}

// ServiceError represents a non-success HTTP outcome from the text
// transformation service. The body is surfaced verbatim for diagnostics and
// never parsed speculatively.
type ServiceError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *ServiceError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("service error for URL '%s': status %d, body: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("service error: status %d, body: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the failure class is worth re-issuing: 5xx is
// retryable, 4xx is terminal for that request.
func (e *ServiceError) Retryable() bool {
	return e.StatusCode >= 500
}

// NewServiceError creates a new service error.
func NewServiceError(statusCode int, body, url string) *ServiceError {
	return &ServiceError{StatusCode: statusCode, Body: body, URL: url}
}

// ClassificationError indicates a response could not be normalized into a
// StructuredResult. Surfaced as a degraded, recoverable condition: the
// presentation layer falls back to raw text instead of failing the flow.
type ClassificationError struct {
	Reason  string
	Wrapped error
}

func (e *ClassificationError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("classification error (%s): %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("classification error (%s)", e.Reason)
}

func (e *ClassificationError) Unwrap() error {
	return e.Wrapped
}

// NewClassificationError creates a new classification error.
func NewClassificationError(reason string, wrapped error) *ClassificationError {
	return &ClassificationError{Reason: reason, Wrapped: wrapped}
}
