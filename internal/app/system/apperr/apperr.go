// internal/app/system/apperr/apperr.go

// Package apperr carries the structured error kinds the HTTP layer maps to
// status codes. Stores return *Error values with client-facing message text;
// handlers pass them straight to the JSON responder.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping and for callers that branch on
// failure class rather than message text.
type Kind int

const (
	Internal Kind = iota // unexpected store/write failure
	Invalid              // malformed or missing input
	NotFound             // referenced document absent
	Conflict             // duplicate registration, existing pending payment
	InvalidState         // wrong status for the requested transition
	Forbidden            // acting on another user's resource
	Unauthorized         // missing or invalid credentials
)

// Error is a classified error with a client-facing message. Data optionally
// carries a payload to return alongside the message (for example the
// existing pending payment on a duplicate submit).
type Error struct {
	Kind    Kind
	Message string
	Data    any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two *Error values by kind and message so sentinel errors
// declared with New work with errors.Is even after WithData.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// New returns a classified error with a fixed message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error while keeping it unwrappable.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithData returns a copy of e carrying a response payload.
func WithData(e *Error, data any) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Data: data, Err: e.Err}
}

// KindOf extracts the Kind from err, defaulting to Internal for
// unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// HTTPStatus maps a kind to its response status code. Conflict and
// InvalidState intentionally map to 400, matching the wire behavior clients
// already depend on.
func HTTPStatus(kind Kind) int {
	switch kind {
	case Invalid, Conflict, InvalidState:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
