package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error.
type ErrorType string

const (
	// InvalidInputError indicates an invalid input error.
	InvalidInputError ErrorType = "InvalidInput"
	// UnsupportedTypeError indicates a value whose type has no text conversion.
	UnsupportedTypeError ErrorType = "UnsupportedType"
	// OverflowError indicates a result that does not fit the numeric representation.
	OverflowError ErrorType = "Overflow"
	// InternalError indicates an internal error.
	InternalError ErrorType = "Internal"
)

var (
	ErrUnknownFunction   = New(InvalidInputError, "unknown series function")
	ErrUnknownMode       = New(InvalidInputError, "unknown evaluation mode")
	ErrOrderTooLarge     = New(InvalidInputError, "series order exceeds the configured maximum")
	ErrArgumentNotFinite = New(InvalidInputError, "series argument must be finite")
)

// TypedError represents an error with a specific type.
type TypedError struct {
	Type ErrorType
	Err  error
}

// Is returns true if the err is, or wraps, a *TypedError whose Type is the one specified
func Is(err error, typ ErrorType) bool {
	var e *TypedError
	if errors.As(err, &e) {
		return e.Type == typ
	}
	return false
}

// TypeOf returns the ErrorType carried by err, or InternalError when err is untyped.
func TypeOf(err error) ErrorType {
	var e *TypedError
	if errors.As(err, &e) {
		return e.Type
	}
	return InternalError
}

// Error implements the error interface for TypedError.
func (e *TypedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TypedError) Unwrap() error {
	return e.Err
}

// New creates a new TypedError with the given error type and message.
func New(errorType ErrorType, message string) *TypedError {
	return &TypedError{Type: errorType, Err: errors.New(message)}
}

// Newf creates a new TypedError with the given error type and message.
func Newf(errorType ErrorType, message string, a ...any) *TypedError {
	return &TypedError{Type: errorType, Err: fmt.Errorf(message, a...)}
}

// NewInternal creates a new internal error with the given message.
func NewInternal(message string) *TypedError {
	return &TypedError{Type: InternalError, Err: errors.New(message)}
}

// NewUnsupportedType creates an error for a value that cannot be converted to text.
// typeName should be the human-readable name of the offending type.
func NewUnsupportedType(typeName string) *TypedError {
	return &TypedError{
		Type: UnsupportedTypeError,
		Err:  fmt.Errorf("no text conversion available for '%s'", typeName),
	}
}

// NewOverflow wraps an arithmetic failure raised while computing op.
func NewOverflow(op string, err error) *TypedError {
	return &TypedError{Type: OverflowError, Err: fmt.Errorf("%s overflowed: %w", op, err)}
}

// Wrap creates a new TypedError by wrapping an existing error with an additional message.
func Wrap(errorType ErrorType, err error, message string) *TypedError {
	return &TypedError{Type: errorType, Err: fmt.Errorf("%s: %w", message, err)}
}

// Invalid creates a new invalid input error
func Invalid(message string, a ...any) *TypedError {
	return &TypedError{Type: InvalidInputError, Err: fmt.Errorf(message, a...)}
}
