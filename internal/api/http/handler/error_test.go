package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZhuneIDS/apitareas/internal/apperror"
	"github.com/ZhuneIDS/apitareas/internal/model"
	"github.com/ZhuneIDS/apitareas/internal/service"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation keeps detail",
			err:        fmt.Errorf("%w: El título y la descripción son obligatorios", service.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "El título y la descripción son obligatorios",
		},
		{name: "user exists", err: service.ErrUserExists, wantStatus: http.StatusBadRequest, wantMsg: "El usuario ya existe"},
		{name: "not found", err: fmt.Errorf("wrapped: %w", model.ErrNotFound), wantStatus: http.StatusNotFound, wantMsg: "Tarea no encontrada"},
		{name: "api error passes through", err: apperror.NewErrMissingAuthorizationToken(), wantStatus: http.StatusUnauthorized, wantMsg: "No autorizado. Inicie sesión."},
		{name: "unknown", err: assert.AnError, wantStatus: http.StatusInternalServerError, wantMsg: "fallback"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := handleError(tt.err, "fallback")
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}
