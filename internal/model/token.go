package model

import "time"

// TokenManager issues and verifies bearer tokens bound to a username.
type TokenManager interface {
	GenerateToken(username string) (string, error)
	ParseToken(token string) (TokenClaims, error)
}

// TokenClaims is the identity carried by a verified token.
type TokenClaims struct {
	Username string
	IssuedAt time.Time
}
