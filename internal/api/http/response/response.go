// Package response writes JSON bodies for the HTTP API.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZhuneIDS/apitareas/internal/apperror"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes err as an ErrorBody. Errors that are not an *apperror.APIError
// are reported as a generic 500.
func Error(w http.ResponseWriter, err error) {
	var apiErr *apperror.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apperror.NewErrInternalServerError("Error interno del servidor", err)
	}
	JSON(w, apiErr.Status, ErrorBody{Error: apiErr.Message})
}
