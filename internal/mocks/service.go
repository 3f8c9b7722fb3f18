package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ZhuneIDS/apitareas/internal/model"
)

// AuthService is a mock of the auth service used by HTTP handlers and middleware.
type AuthService struct {
	mock.Mock
}

func NewAuthService(t mock.TestingT) *AuthService {
	m := &AuthService{}
	m.Test(t)
	registerCleanup(t, &m.Mock)
	return m
}

func (m *AuthService) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *AuthService) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// TaskService is a mock of the task service used by HTTP handlers.
type TaskService struct {
	mock.Mock
}

func NewTaskService(t mock.TestingT) *TaskService {
	m := &TaskService{}
	m.Test(t)
	registerCleanup(t, &m.Mock)
	return m
}

func (m *TaskService) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *TaskService) Create(ctx context.Context, title, description string) (model.Task, error) {
	args := m.Called(ctx, title, description)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskService) Update(ctx context.Context, id int64, title, description string) (model.Task, error) {
	args := m.Called(ctx, id, title, description)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
