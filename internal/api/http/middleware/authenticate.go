package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ZhuneIDS/apitareas/internal/api/http/response"
	"github.com/ZhuneIDS/apitareas/internal/apperror"
	"github.com/ZhuneIDS/apitareas/internal/logger"
	"github.com/ZhuneIDS/apitareas/internal/model"
	"github.com/ZhuneIDS/apitareas/internal/service"
)

// TokenVerifier resolves the username bound to a bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Authenticate rejects requests without a valid bearer token and puts the
// authenticated username into the request context.
type Authenticate struct {
	verifier       TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// Handler wraps next with the bearer token check.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := m.verifier.Verify(r.Context(), bearerToken(r))
		if err != nil {
			m.reject(w, r, err)
			return
		}

		m.logger.Debug("Authenticate: user authenticated",
			"username", username,
			"path", r.URL.Path)

		ctx := m.contextManager.SetUsernameToContext(r.Context(), username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) reject(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrMissingToken):
		m.logger.Warn("Authenticate: unauthorized access attempt",
			"path", r.URL.Path)
		response.Error(w, apperror.NewErrMissingAuthorizationToken())
	default:
		m.logger.Warn("Authenticate: invalid token",
			"path", r.URL.Path,
			"error", err.Error())
		response.Error(w, apperror.NewErrInvalidAuthorizationToken(err))
	}
}

// bearerToken returns the credential following the scheme in the
// Authorization header, or "" when there is none.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	_, token, ok := strings.Cut(header, " ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
