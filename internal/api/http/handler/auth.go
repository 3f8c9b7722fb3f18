package handler

import (
	"context"
	"net/http"

	"github.com/ZhuneIDS/apitareas/internal/api/http/response"
	"github.com/ZhuneIDS/apitareas/internal/logger"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

// Credentials is the body of register and login requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a body carrying a human readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req Credentials
	if !decodeJSON(w, r, &req) {
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"username", req.Username)

	if err := h.authService.Register(r.Context(), req.Username, req.Password); err != nil {
		apiErr := handleError(err, "Error al registrar el usuario")
		h.logger.Info("Auth handler: registration failed",
			"username", req.Username,
			"status", apiErr.Status,
			"error", err.Error())
		response.Error(w, apiErr)
		return
	}

	response.JSON(w, http.StatusCreated, MessageResponse{Message: "Usuario registrado exitosamente"})
}

// Login handles POST /login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req Credentials
	if !decodeJSON(w, r, &req) {
		return
	}

	h.logger.Debug("Auth handler: processing login request",
		"username", req.Username)

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apiErr := handleError(err, "Error al iniciar sesión")
		h.logger.Info("Auth handler: login failed",
			"username", req.Username,
			"status", apiErr.Status,
			"error", err.Error())
		response.Error(w, apiErr)
		return
	}

	response.JSON(w, http.StatusOK, LoginResponse{Token: token})
}
