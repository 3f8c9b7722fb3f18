package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ZhuneIDS/apitareas/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	query := `SELECT username, password_hash FROM users WHERE username = $1`

	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (username, password_hash) VALUES ($1, $2)
			  ON CONFLICT (username) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	if n == 0 {
		return model.User{}, model.ErrAlreadyExists
	}

	return user, nil
}
