package jsonfile

import (
	"context"
	"slices"

	"github.com/ZhuneIDS/apitareas/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository keeps credentials in a JSON collection.
type UserRepository struct {
	users *Collection[model.User]
}

func NewUserRepository(users *Collection[model.User]) *UserRepository {
	return &UserRepository{users: users}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	users, err := r.users.Load(ctx)
	if err != nil {
		return model.User{}, err
	}

	i := slices.IndexFunc(users, func(u model.User) bool { return u.Username == username })
	if i < 0 {
		return model.User{}, model.ErrNotFound
	}
	return users[i], nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	err := r.users.Mutate(ctx, func(users []model.User) ([]model.User, error) {
		if slices.ContainsFunc(users, func(u model.User) bool { return u.Username == user.Username }) {
			return nil, model.ErrAlreadyExists
		}
		return append(users, user), nil
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}
