package models

import "fmt"

// MessageReference identifies a message by the three IDs in its Discord URL.
type MessageReference struct {
	GuildID   uint64
	ChannelID uint64
	MessageID uint64
}

// URL renders the reference in canonical https form.
func (r MessageReference) URL() string {
	return fmt.Sprintf("https://discord.com/channels/%d/%d/%d", r.GuildID, r.ChannelID, r.MessageID)
}
