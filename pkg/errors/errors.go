package errors

import (
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrNotFound      = NewNotFoundError("resource", "resource not found")
	ErrAlreadyExists = NewAlreadyExistsError("resource", "resource already exists")
	ErrInternal      = NewInternalError("internal server error", nil)
)

// HTTPStatuser is implemented by errors that know their HTTP status code.
type HTTPStatuser interface {
	HTTPStatus() int
}

// ValidationError represents rejected input: a missing field or a malformed value.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error returns the human-readable message only, as it is shown to clients.
func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus implements HTTPStatuser
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus implements HTTPStatuser
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// AlreadyExistsError represents a unique key violation.
// It is reported as a bad request, not a conflict: the client sent a value that is taken.
type AlreadyExistsError struct {
	Resource string
	Message  string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus implements HTTPStatuser
func (e *AlreadyExistsError) HTTPStatus() int {
	return http.StatusBadRequest
}

// InternalError represents a storage or other server-side fault
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus implements HTTPStatuser
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}
