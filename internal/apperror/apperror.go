// Package apperror describes errors as they are reported to API clients.
package apperror

import (
	"fmt"
	"net/http"
)

// APIError is an error with an HTTP status and a public message.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func New(status int, message string, err error) *APIError {
	return &APIError{Status: status, Message: message, Err: err}
}

func NewErrBadRequest(message string, err error) *APIError {
	return New(http.StatusBadRequest, message, err)
}

func NewErrMissingAuthorizationToken() *APIError {
	return New(http.StatusUnauthorized, "No autorizado. Inicie sesión.", nil)
}

func NewErrInvalidAuthorizationToken(err error) *APIError {
	return New(http.StatusForbidden, "Token inválido o expirado.", err)
}

func NewErrTaskNotFound(err error) *APIError {
	return New(http.StatusNotFound, "Tarea no encontrada", err)
}

func NewErrInternalServerError(message string, err error) *APIError {
	return New(http.StatusInternalServerError, message, err)
}
