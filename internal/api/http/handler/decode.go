package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZhuneIDS/apitareas/internal/api/http/response"
	"github.com/ZhuneIDS/apitareas/internal/apperror"
)

// maxBodyBytes caps JSON request bodies at 100 KiB.
const maxBodyBytes = 100 << 10

// decodeJSON reads the request body into v and writes a 400, or a 413 for
// oversized bodies, when it cannot.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(w, apperror.New(http.StatusRequestEntityTooLarge, "Cuerpo de la petición demasiado grande", err))
		return false
	}
	response.Error(w, apperror.NewErrBadRequest("Cuerpo de la petición inválido", err))
	return false
}
