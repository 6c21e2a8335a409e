// Package errors defines the domain error taxonomy returned by services and
// translated to HTTP statuses by the handlers.
package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// DomainError carries a kind, a stable code and a client safe message.
// Err holds the underlying cause and is never shown to clients.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so wrapped copies of a sentinel still compare equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap returns a copy of e carrying err as its cause.
func (e *DomainError) Wrap(err error) *DomainError {
	cp := *e
	cp.Err = err
	return &cp
}

func NotFound(code, message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) *DomainError {
	return &DomainError{Kind: KindConflict, Code: code, Message: message}
}

func Unauthorized(code, message string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Code: code, Message: message}
}

// Validation builds a validation error with per-field messages.
func Validation(fields map[string][]string) *DomainError {
	return &DomainError{
		Kind:    KindValidation,
		Code:    "VALIDATION_FAILED",
		Message: "Validation failed",
		Fields:  fields,
	}
}

// FieldError is a validation error for a single field.
func FieldError(field, message string) *DomainError {
	return Validation(map[string][]string{field: {message}})
}

func Internal(message string, err error) *DomainError {
	return &DomainError{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: message, Err: err}
}

// As extracts a DomainError from err's chain.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of err, treating anything unclassified as internal.
func KindOf(err error) Kind {
	if de, ok := As(err); ok {
		return de.Kind
	}
	return KindInternal
}
