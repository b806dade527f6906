package models

import "github.com/samber/mo"

// CommandInvocation is the inbound chat message that triggered a command.
type CommandInvocation struct {
	InvocationID string
	MessageID    string
	ChannelID    string
	UserID       string
	Content      string
	// None for direct messages.
	GuildID mo.Option[uint64]
}

// DiscordMessage is a message fetched from the backend.
type DiscordMessage struct {
	ID        string
	ChannelID string
	GuildID   string
	AuthorID  string
	Pinned    bool
}
