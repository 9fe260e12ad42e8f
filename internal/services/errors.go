package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service matches exactly one of
// these with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// Error is a classified service failure. Message is safe to show to
// clients; Err holds the underlying cause, if any.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func invalidInput(msg string) error { return &Error{Kind: ErrInvalidInput, Message: msg} }

func notFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }

func conflict(msg string, err error) error { return &Error{Kind: ErrConflict, Message: msg, Err: err} }

func internal(msg string, err error) error { return &Error{Kind: ErrInternal, Message: msg, Err: err} }
