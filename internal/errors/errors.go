package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Taxonomy constructors. Handlers map these to HTTP responses unchanged;
// none of them is retried anywhere in the core.

func NewValidation(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

func NewNotFound(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound}
}

// NewImmutable marks an attempted mutation of the built-in fallback event.
func NewImmutable(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict}
}

func NewForbidden(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden}
}

func NewUnauthorized(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnauthorized}
}

// StoreError wraps an underlying collection I/O failure. The cause stays
// attached so callers can decide whether to retry; the core never does.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func NewStore(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func statusOf(err error) int {
	var sc *ErrorWithStatusCode
	if errors.As(err, &sc) {
		return sc.StatusCode
	}
	return 0
}

func IsValidation(err error) bool { return statusOf(err) == http.StatusBadRequest }
func IsNotFound(err error) bool   { return statusOf(err) == http.StatusNotFound }
func IsImmutable(err error) bool  { return statusOf(err) == http.StatusConflict }
func IsForbidden(err error) bool  { return statusOf(err) == http.StatusForbidden }

func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
