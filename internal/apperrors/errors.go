package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConfiguration indicates the system was not set up correctly, e.g. a required
// chart-of-accounts entry is missing. It is an operator fault, not a user input fault.
var ErrConfiguration = errors.New("configuration error")

// ErrConcurrency indicates a concurrent update to the same record was detected.
// Callers should retry the whole operation.
var ErrConcurrency = errors.New("concurrent modification")

// ErrUnauthorized indicates the caller identity is missing or invalid.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is a generic error for unexpected storage or programming faults.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower level error with an HTTP-ish status code and a message safe to show.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the wrapped error so errors.Is keeps working through AppError.
func (e *AppError) Unwrap() error {
	return e.Err
}
