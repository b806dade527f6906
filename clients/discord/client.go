package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"pinbot/clients"
	"pinbot/models"
)

// DiscordClient implements the clients.DiscordClient interface on top of a discordgo session
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient creates a new Discord client sharing the gateway session's REST transport
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

// SendMessage posts plain text content to a channel
func (c *DiscordClient) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return nil
}

// FetchMessage retrieves a single message by channel and message ID
func (c *DiscordClient) FetchMessage(
	ctx context.Context,
	channelID, messageID string,
) (*models.DiscordMessage, error) {
	msg, err := c.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message %s in channel %s: %w", messageID, channelID, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("message %s not found in channel %s", messageID, channelID)
	}

	result := &models.DiscordMessage{
		ID:        msg.ID,
		ChannelID: msg.ChannelID,
		GuildID:   msg.GuildID,
		Pinned:    msg.Pinned,
	}
	if result.ChannelID == "" {
		result.ChannelID = channelID
	}
	if msg.Author != nil {
		result.AuthorID = msg.Author.ID
	}
	return result, nil
}

// PinMessage pins the message in its channel
func (c *DiscordClient) PinMessage(ctx context.Context, message *models.DiscordMessage) error {
	if err := c.session.ChannelMessagePin(message.ChannelID, message.ID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to pin message %s: %w", message.ID, err)
	}
	return nil
}

// UnpinMessage unpins the message in its channel
func (c *DiscordClient) UnpinMessage(ctx context.Context, message *models.DiscordMessage) error {
	if err := c.session.ChannelMessageUnpin(message.ChannelID, message.ID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to unpin message %s: %w", message.ID, err)
	}
	return nil
}
