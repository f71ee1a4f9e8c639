// Package apperr defines the application error taxonomy shared by the
// store, service and API layers.
package apperr

import (
	"errors"
	"net/http"
)

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// Kind classifies an application error.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindReferential Kind = "referential"
	KindStorage     Kind = "storage"
)

// Error is a kinded application error. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validation reports a malformed or missing field.
func Validation(field, message string) error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Referential reports a reference to a row that does not exist.
func Referential(field, message string) error {
	return &Error{Kind: KindReferential, Field: field, Message: message}
}

// NotFound reports an absent resource. The cause is usually ErrNotFound.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message, Err: ErrNotFound}
}

// Storage wraps an unexpected backend failure.
func Storage(cause error) error {
	return &Error{Kind: KindStorage, Err: cause}
}

// KindOf returns the kind of err, defaulting to KindStorage for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e.Kind != "" {
		return e.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindStorage
}

// HTTPStatus maps an error to its response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindReferential:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
