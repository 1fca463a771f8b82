// Package apierr defines the typed error kinds shared across the
// stats, equipment, cache, and damage packages, and the HTTP status
// each maps to at the transport boundary.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is one of the abstract error kinds of spec.md §7.
type Kind string

const (
	ParseError        Kind = "ParseError"
	MissingKey        Kind = "MissingKey"
	BuilderIncomplete Kind = "BuilderIncomplete"
	DomainViolation   Kind = "DomainViolation"
	EvaluationError   Kind = "EvaluationError"
	IoError           Kind = "IoError"
)

// Error is the typed error carried across package boundaries,
// modeled on the teacher's steam.APIError: a stable Kind plus a
// human-readable Message, with the HTTP status resolved lazily at
// the transport boundary rather than baked in at construction time.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a typed error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error, preserving it for
// errors.Is/As via Unwrap.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// As reports whether err is or wraps an *Error, and returns it.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// StatusCode maps an error kind to the HTTP status the transport
// layer should answer with; unrecognized errors default to 500.
func StatusCode(err error) int {
	e, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case ParseError, DomainViolation, BuilderIncomplete:
		return http.StatusBadRequest
	case MissingKey:
		return http.StatusNotFound
	case EvaluationError, IoError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
