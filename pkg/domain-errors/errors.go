// Package domainerrors defines the coded error taxonomy shared by services and
// transports. Services return these; handlers translate them to HTTP responses.
package domainerrors

import (
	"errors"
	"maps"
)

// Code identifies the category of a domain failure.
type Code string

const (
	CodeNotFound               Code = "not_found"
	CodeConflict               Code = "conflict"
	CodeValidation             Code = "validation_error"
	CodeBadRequest             Code = "bad_request"
	CodeInvalidInput           Code = "invalid_input"
	CodeInvalidStateTransition Code = "invalid_state_transition"
	CodeTransitionBlocked      Code = "transition_blocked"
	CodeTaskExecution          Code = "task_execution_failed"
	CodeInvariantViolation     Code = "invariant_violation"
	CodeUnauthorized           Code = "unauthorized"
	CodeForbidden              Code = "forbidden"
	CodeTimeout                Code = "timeout"
	CodeInternal               Code = "internal_error"
)

// Error is a coded domain error. Details carry the structured identifiers
// (catalog, field, command, task, reason) callers need to render a failure.
type Error struct {
	Code    Code
	Message string
	Err     error
	Details map[string]any
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail returns a copy of the error with key set to value.
func (e *Error) WithDetail(key string, value any) *Error {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+1)
	maps.Copy(cp.Details, e.Details)
	cp.Details[key] = value
	return &cp
}

// New creates a domain error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap annotates err with a code and message. A nil err yields nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// As returns the outermost domain error in err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether the outermost domain error in err's chain carries code.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// Is is an alias for HasCode kept for handler readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// DetailOf returns a detail value from the outermost domain error.
func DetailOf(err error, key string) (any, bool) {
	de, ok := As(err)
	if !ok || de.Details == nil {
		return nil, false
	}
	v, ok := de.Details[key]
	return v, ok
}
