package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation failures.
var (
	ErrBadID          = errors.New("id does not match pattern")
	ErrMissingField   = errors.New("required field missing")
	ErrBadEnum        = errors.New("value not in enumeration")
	ErrOutOfRange     = errors.New("value out of range")
	ErrTooLong        = errors.New("value exceeds maximum length")
	ErrQMForbidden    = errors.New("ASIL QM not allowed")
	ErrUnknownRelKind = errors.New("unknown relationship kind")
	ErrBadTransition  = errors.New("status transition not allowed")
)

// ValidationError wraps a sentinel with field context.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError indicates a referenced node does not exist in the graph.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
