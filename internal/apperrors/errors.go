// Package apperrors defines the error taxonomy shared by the service and
// repository layers. Handlers translate these into HTTP status codes and
// never expose anything else to clients.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that the referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a client input that violates a data-model rule.
// The message is safe to return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

// DatabaseError wraps an unexpected driver or connection failure. The
// wrapped error is for logs only, never for response bodies.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewDatabase(op string, err error) error {
	return &DatabaseError{Op: op, Err: err}
}
