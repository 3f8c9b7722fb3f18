package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ZhuneIDS/apitareas/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func NewTokenManager(t mock.TestingT) *TokenManager {
	m := &TokenManager{}
	m.Test(t)
	registerCleanup(t, &m.Mock)
	return m
}

func (m *TokenManager) GenerateToken(username string) (string, error) {
	args := m.Called(username)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ParseToken(token string) (model.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.TokenClaims), args.Error(1)
}

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func NewContextManager(t mock.TestingT) *ContextManager {
	m := &ContextManager{}
	m.Test(t)
	registerCleanup(t, &m.Mock)
	return m
}

func (m *ContextManager) SetUsernameToContext(ctx context.Context, username string) context.Context {
	args := m.Called(ctx, username)
	return args.Get(0).(context.Context)
}

func (m *ContextManager) GetUsernameFromContext(ctx context.Context) (string, bool) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1)
}
