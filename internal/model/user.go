package model

import "context"

// UserStore defines persistence operations for credentials.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User is a registered account. PasswordHash holds a bcrypt hash.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
}
