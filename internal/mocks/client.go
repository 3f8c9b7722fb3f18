package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ZhuneIDS/apitareas/internal/client"
	"github.com/ZhuneIDS/apitareas/internal/model"
)

// API is a mock of the task API client used by the view controller.
type API struct {
	mock.Mock
}

func NewAPI(t mock.TestingT) *API {
	m := &API{}
	m.Test(t)
	registerCleanup(t, &m.Mock)
	return m
}

func (m *API) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *API) Login(ctx context.Context, username, password string) (*client.Session, error) {
	args := m.Called(ctx, username, password)
	s, _ := args.Get(0).(*client.Session)
	return s, args.Error(1)
}

func (m *API) ListTasks(ctx context.Context, s *client.Session) ([]model.Task, error) {
	args := m.Called(ctx, s)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *API) CreateTask(ctx context.Context, s *client.Session, title, description string) (model.Task, error) {
	args := m.Called(ctx, s, title, description)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *API) UpdateTask(ctx context.Context, s *client.Session, id int64, title, description string) (model.Task, error) {
	args := m.Called(ctx, s, id, title, description)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *API) DeleteTask(ctx context.Context, s *client.Session, id int64) error {
	args := m.Called(ctx, s, id)
	return args.Error(0)
}

// SessionStore is a mock of the client session store.
type SessionStore struct {
	mock.Mock
}

func NewSessionStore(t mock.TestingT) *SessionStore {
	m := &SessionStore{}
	m.Test(t)
	registerCleanup(t, &m.Mock)
	return m
}

func (m *SessionStore) Load(ctx context.Context) (*client.Session, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*client.Session)
	return s, args.Error(1)
}

func (m *SessionStore) Save(ctx context.Context, s *client.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SessionStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
