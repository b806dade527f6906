package pin

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pinbot/models"
)

// MockPinUseCase is a mock implementation of the PinUseCase
type MockPinUseCase struct {
	mock.Mock
}

func (m *MockPinUseCase) CommandPrefix() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPinUseCase) ProcessCommand(ctx context.Context, cmd Command, inv models.CommandInvocation) error {
	args := m.Called(ctx, cmd, inv)
	return args.Error(0)
}
