package client

import (
	"errors"
	"net/http"
)

// Error kinds returned by Client, matched with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrServer          = errors.New("server error")
)

// APIError is a non-2xx response from the task API.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.kind.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// IsAuthError reports whether err means the session is no longer usable.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrForbidden)
}

func newAPIError(status int, message string) *APIError {
	var kind error
	switch {
	case status == http.StatusUnauthorized:
		kind = ErrUnauthenticated
	case status == http.StatusForbidden:
		kind = ErrForbidden
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		kind = ErrValidation
	default:
		kind = ErrServer
	}
	return &APIError{Status: status, Message: message, kind: kind}
}
