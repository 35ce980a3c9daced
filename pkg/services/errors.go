// Package services provides the session gate and the standardized error types shared by
// the hub's workflows.
package services

import (
	"errors"
	"fmt"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrMissingCredentials = errors.New("missing credentials")
	ErrEmptyPrompt        = errors.New("empty prompt")
	ErrNoFilesSelected    = errors.New("no files selected")
	ErrInvalidConfig      = errors.New("invalid workflow configuration")
	ErrSchemaViolation    = errors.New("request does not match schema")
	ErrUnsupportedFile    = errors.New("unsupported file type")

	// Lookup Errors (404 Not Found).
	ErrNoReport    = errors.New("no report generated yet")
	ErrUnknownTab  = errors.New("unknown result tab")
	ErrUnknownKind = errors.New("unknown workflow")

	// Session Errors (401 Unauthorized).
	ErrUnauthenticated = errors.New("not authenticated")

	// Inert demo features (501 Not Implemented).
	ErrNotImplementedInDemo = errors.New("not implemented in demo")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrEmptyPrompt) ||
		errors.Is(err, ErrNoFilesSelected) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrSchemaViolation) ||
		errors.Is(err, ErrUnsupportedFile)
}

// IsNotFoundError checks if an error should return HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNoReport) ||
		errors.Is(err, ErrUnknownTab) ||
		errors.Is(err, ErrUnknownKind)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Message is the warning shown to the user for err.
func Message(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Message != "" {
		return serviceErr.Message
	}

	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "Please enter email and password"
	case errors.Is(err, ErrEmptyPrompt):
		return "Please enter a prompt to test"
	case errors.Is(err, ErrNoFilesSelected):
		return "Please select at least one file to analyze"
	case errors.Is(err, ErrNotImplementedInDemo):
		return "This export is not implemented in demo"
	case errors.Is(err, ErrNoReport):
		return "Nothing has been generated yet"
	case errors.Is(err, ErrUnauthenticated):
		return "Please log in to continue"
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
