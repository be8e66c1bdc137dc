package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports missing or malformed input. It may carry
// field-level details for form presentation.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// InvariantError reports an operation that would break a domain invariant
// (eg. removing a project's creator from its members).
type InvariantError struct {
	msg string
}

func NewInvariantError(msg string) error {
	return &InvariantError{msg: msg}
}

func (err InvariantError) Error() string { return err.msg }

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
