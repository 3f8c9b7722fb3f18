package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ZhuneIDS/apitareas/internal/logger"
	"github.com/ZhuneIDS/apitareas/internal/model"
)

// Auth registers users, logs them in and verifies their bearer tokens.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	cost         int
	logger       *logger.Logger
}

// NewAuth creates an Auth service hashing passwords with the given bcrypt cost.
func NewAuth(
	userStore model.UserStore,
	tokenManager model.TokenManager,
	cost int,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		cost:         cost,
		logger:       logger,
	}
}

// Register stores a new user with a salted hash of password.
func (a *Auth) Register(ctx context.Context, username, password string) error {
	a.logger.Debug("Auth service: registering user",
		"username", username)

	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: Usuario y contraseña son obligatorios", ErrValidation)
	}

	_, err := a.userStore.GetByUsername(ctx, username)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"username", username)
		return ErrUserExists
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user",
			"username", username,
			"error", err.Error())
		return fmt.Errorf("failed to get user by username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return fmt.Errorf("%w: La contraseña es demasiado larga", ErrValidation)
	}
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = a.userStore.Create(ctx, model.User{Username: username, PasswordHash: string(hash)})
	if errors.Is(err, model.ErrAlreadyExists) {
		return ErrUserExists
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", username)

	return nil
}

// Login checks credentials and issues a bearer token bound to username.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	a.logger.Debug("Auth service: logging in",
		"username", username)

	if strings.TrimSpace(username) == "" || password == "" {
		return "", fmt.Errorf("%w: Usuario y contraseña son obligatorios", ErrValidation)
	}

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: unknown user",
			"username", username)
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("Auth service: wrong password",
			"username", username)
		return "", ErrWrongPassword
	}

	token, err := a.tokenManager.GenerateToken(user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"username", username)

	return token, nil
}

// Verify returns the username bound to token.
func (a *Auth) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	claims, err := a.tokenManager.ParseToken(token)
	if err != nil {
		a.logger.Debug("Auth service: token rejected",
			"error", err.Error())
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims.Username, nil
}
