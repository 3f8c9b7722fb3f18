// Package mocks contains testify mocks for the service and transport interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ZhuneIDS/apitareas/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func NewUserStore(t mock.TestingT) *UserStore {
	m := &UserStore{}
	m.Test(t)
	registerCleanup(t, &m.Mock)
	return m
}

func (m *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

// TaskStore is a mock of model.TaskStore.
type TaskStore struct {
	mock.Mock
}

func NewTaskStore(t mock.TestingT) *TaskStore {
	m := &TaskStore{}
	m.Test(t)
	registerCleanup(t, &m.Mock)
	return m
}

func (m *TaskStore) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *TaskStore) Create(ctx context.Context, task model.Task) (model.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) Update(ctx context.Context, task model.Task) (model.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type cleanupT interface {
	Cleanup(func())
}

func registerCleanup(t mock.TestingT, m *mock.Mock) {
	if ct, ok := t.(cleanupT); ok {
		ct.Cleanup(func() { m.AssertExpectations(t) })
	}
}
