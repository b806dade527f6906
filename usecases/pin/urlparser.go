package pin

import (
	"regexp"
	"strconv"

	"github.com/samber/mo"

	"pinbot/models"
)

// Anchored at both ends; the scheme token is case-sensitive.
var messageURLRegex = regexp.MustCompile(`^https?://discord.com/channels/([0-9]+)/([0-9]+)/([0-9]+)$`)

// ParseMessageURL extracts the guild, channel and message IDs from a Discord
// message URL. Anything that does not match the grammar exactly, including IDs
// that overflow 64 bits, yields mo.None.
func ParseMessageURL(input string) mo.Option[models.MessageReference] {
	matches := messageURLRegex.FindStringSubmatch(input)
	if matches == nil {
		return mo.None[models.MessageReference]()
	}

	ids := make([]uint64, 0, 3)
	for _, group := range matches[1:] {
		id, err := strconv.ParseUint(group, 10, 64)
		if err != nil {
			return mo.None[models.MessageReference]()
		}
		ids = append(ids, id)
	}

	return mo.Some(models.MessageReference{
		GuildID:   ids[0],
		ChannelID: ids[1],
		MessageID: ids[2],
	})
}
