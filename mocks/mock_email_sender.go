package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"obrapass/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendExpiryDigest(ctx context.Context, toEmail, toName string, items []port.ExpiringDocument) error {
	args := m.Called(ctx, toEmail, toName, items)
	return args.Error(0)
}
