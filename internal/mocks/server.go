package mocks

import (
	"net"

	"github.com/stretchr/testify/mock"
)

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func NewSecurityLayer(t mock.TestingT) *SecurityLayer {
	m := &SecurityLayer{}
	m.Test(t)
	registerCleanup(t, &m.Mock)
	return m
}

func (m *SecurityLayer) Listen(addr string) (net.Listener, error) {
	args := m.Called(addr)
	ln, _ := args.Get(0).(net.Listener)
	return ln, args.Error(1)
}
