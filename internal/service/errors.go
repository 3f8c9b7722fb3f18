package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks requests with missing or malformed fields.
	ErrValidation = errors.New("validation failed")
	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is the parent of every login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is a login failure for an unknown username.
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrInvalidCredentials)
	// ErrWrongPassword is a login failure for a password mismatch.
	ErrWrongPassword = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)
	// ErrMissingToken is returned when no bearer token was supplied.
	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid token")
)
