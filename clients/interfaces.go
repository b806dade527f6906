package clients

import (
	"context"

	"pinbot/models"
)

// DiscordClient defines the backend operations the pin commands consume
type DiscordClient interface {
	SendMessage(ctx context.Context, channelID, content string) error
	FetchMessage(ctx context.Context, channelID, messageID string) (*models.DiscordMessage, error)
	PinMessage(ctx context.Context, message *models.DiscordMessage) error
	UnpinMessage(ctx context.Context, message *models.DiscordMessage) error
}
