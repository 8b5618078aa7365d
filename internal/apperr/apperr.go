// Package apperr classifies failures into the categories the HTTP layer
// renders: validation, not found, upstream, unavailable and internal.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// Kind identifies the category of an Error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUpstream
	KindUnavailable
)

// Error is a classified failure carrying a caller-facing message.
type Error struct {
	Kind Kind
	// Code replaces the kind label in the rendered `error` field.
	Code    string
	Message string
	// Fields lists missing required fields, for validation errors.
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Label is the stable `error` field rendered for this error.
func (e *Error) Label() string {
	if e.Code != "" {
		return e.Code
	}
	switch e.Kind {
	case KindValidation:
		return "Invalid request"
	case KindNotFound:
		return "Not found"
	case KindUpstream:
		return "Upstream service error"
	case KindUnavailable:
		return "Service unavailable"
	default:
		return "Internal server error"
	}
}

// Validation reports a missing or invalid caller-supplied parameter.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// MissingFields reports absent required fields, in the order given.
func MissingFields(fields ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    "Missing required fields",
		Message: "Missing required fields: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

// NotFound reports an absent entity.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Upstream wraps a record-store or blob-store fault.
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// Unavailable wraps a collaborator that is not configured or not reachable.
// code identifies the collaborator, e.g. "delivery_unavailable".
func Unavailable(code, message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Code: code, Message: message, Err: err}
}

// As extracts a classified error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	if e, ok := As(err); ok {
		return e.Status()
	}
	return http.StatusInternalServerError
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
