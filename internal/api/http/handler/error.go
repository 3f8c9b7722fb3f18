package handler

import (
	"errors"
	"strings"

	"github.com/ZhuneIDS/apitareas/internal/apperror"
	"github.com/ZhuneIDS/apitareas/internal/model"
	"github.com/ZhuneIDS/apitareas/internal/service"
)

// handleError maps service errors to API errors. fallback is the public
// message used for unexpected failures of the current operation.
func handleError(err error, fallback string) *apperror.APIError {
	var apiErr *apperror.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		return apperror.NewErrBadRequest(validationMessage(err), err)
	case errors.Is(err, service.ErrUserExists):
		return apperror.NewErrBadRequest("El usuario ya existe", err)
	case errors.Is(err, service.ErrUserNotFound):
		return apperror.NewErrBadRequest("Usuario no encontrado", err)
	case errors.Is(err, service.ErrWrongPassword):
		return apperror.NewErrBadRequest("Contraseña incorrecta", err)
	case errors.Is(err, model.ErrNotFound):
		return apperror.NewErrTaskNotFound(err)
	default:
		return apperror.NewErrInternalServerError(fallback, err)
	}
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
}
