package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pinbot/models"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) SendMessage(ctx context.Context, channelID, content string) error {
	args := m.Called(ctx, channelID, content)
	return args.Error(0)
}

func (m *MockDiscordClient) FetchMessage(
	ctx context.Context,
	channelID, messageID string,
) (*models.DiscordMessage, error) {
	args := m.Called(ctx, channelID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscordMessage), args.Error(1)
}

func (m *MockDiscordClient) PinMessage(ctx context.Context, message *models.DiscordMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockDiscordClient) UnpinMessage(ctx context.Context, message *models.DiscordMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
