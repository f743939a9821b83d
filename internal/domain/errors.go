package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a stable machine-readable error category. Every error that
// crosses the service boundary carries exactly one Kind.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindAuthorization   Kind = "authorization"
	KindNotFound        Kind = "not_found"
	KindInvalidState    Kind = "invalid_state"
	KindOperationFailed Kind = "operation_failed"
	KindStorage         Kind = "storage"
)

// Error pairs a Kind with a human-readable message. Fields lists the
// offending input fields for validation errors.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s (fields: %s)", e.Message, strings.Join(e.Fields, ", "))
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidation(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NewInvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

func NewOperationFailed(message string, err error) *Error {
	return &Error{Kind: KindOperationFailed, Message: message, Err: err}
}

func NewStorage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage unavailable", Err: err}
}

// KindOf extracts the Kind from err, or KindStorage for unknown errors
// so that unclassified failures never masquerade as client mistakes.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStorage
}

var (
	ErrProjectNotFound = &Error{Kind: KindNotFound, Message: "project not found"}
	ErrSessionNotFound = &Error{Kind: KindNotFound, Message: "session not found"}
	ErrVersionNotFound = &Error{Kind: KindNotFound, Message: "content version not found"}

	ErrMissingUser = &Error{Kind: KindAuthorization, Message: "missing authenticated user"}
	ErrNotOwner    = &Error{Kind: KindAuthorization, Message: "resource is not owned by the requesting user"}
)
