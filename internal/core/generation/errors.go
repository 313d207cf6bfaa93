package generation

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a generation failure.
type ErrorKind string

const (
	// MissingRequiredField: a required name or argument was not supplied.
	MissingRequiredField ErrorKind = "MissingRequiredField"
	// UserInput: an argument or flag value is malformed (e.g. --fields, --config).
	UserInput ErrorKind = "UserInput"
	// DependencyNotFound: something the generator builds on does not exist yet.
	DependencyNotFound ErrorKind = "DependencyNotFound"
	// PreconditionFailed: the working directory is not in the expected state.
	PreconditionFailed ErrorKind = "PreconditionFailed"
	// TemplateRenderFailure: a template could not be loaded or executed.
	TemplateRenderFailure ErrorKind = "TemplateRenderFailure"
	// WriteFailure: an output file could not be written.
	WriteFailure ErrorKind = "WriteFailure"
)

// Error is a classified generation failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around err.
func Wrap(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or "" when err is not a generation error.
func KindOf(err error) ErrorKind {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return ""
}

// IsUserInput reports whether err was caused by bad or missing user input.
func IsUserInput(err error) bool {
	switch KindOf(err) {
	case MissingRequiredField, UserInput:
		return true
	}
	return false
}

// IsPrecondition reports whether err was caused by missing prerequisites.
func IsPrecondition(err error) bool {
	switch KindOf(err) {
	case DependencyNotFound, PreconditionFailed:
		return true
	}
	return false
}

// IsFatal reports whether err aborts generation before anything is written.
func IsFatal(err error) bool {
	return IsUserInput(err) || IsPrecondition(err)
}
