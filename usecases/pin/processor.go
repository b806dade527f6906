package pin

import (
	"context"
	"strconv"
	"strings"

	"pinbot/core"
	"pinbot/core/log"
	"pinbot/models"
)

// ResolveTarget turns the invocation's text into the message it references.
// Every rejection replies once in the invoking channel and is returned as a
// *core.CommandError; the caller must not reply again.
func (u *PinUseCase) ResolveTarget(
	ctx context.Context,
	expectedPrefix string,
	inv models.CommandInvocation,
) (*models.DiscordMessage, error) {
	log.Debug("📋 Starting to resolve target message", "invocation_id", inv.InvocationID, "channel_id", inv.ChannelID)

	rawURL, found := strings.CutPrefix(inv.Content, expectedPrefix)
	if !found {
		return nil, u.reject(ctx, inv, core.ErrMissingInput, nil)
	}

	maybeRef := ParseMessageURL(rawURL)
	if maybeRef.IsAbsent() {
		return nil, u.reject(ctx, inv, core.ErrMalformedURL, nil)
	}
	ref := maybeRef.MustGet()

	if inv.GuildID.IsAbsent() {
		return nil, u.reject(ctx, inv, core.ErrNoGuildContext, nil)
	}

	if inv.GuildID.MustGet() != ref.GuildID {
		log.Warn("🚫 Refusing cross-guild message reference",
			"invocation_id", inv.InvocationID,
			"invocation_guild_id", inv.GuildID.MustGet(),
			"target_guild_id", ref.GuildID,
			"user_id", inv.UserID)
		return nil, u.reject(ctx, inv, core.ErrGuildMismatch, nil)
	}

	target, err := u.discordClient.FetchMessage(
		ctx,
		strconv.FormatUint(ref.ChannelID, 10),
		strconv.FormatUint(ref.MessageID, 10),
	)
	if err != nil {
		return nil, u.reject(ctx, inv, core.ErrFetchFailed, err)
	}

	log.Debug("✅ Resolved target message", "invocation_id", inv.InvocationID, "target", ref.URL())
	return target, nil
}

// reject replies with the user-facing text for kind and returns the matching
// CommandError.
func (u *PinUseCase) reject(
	ctx context.Context,
	inv models.CommandInvocation,
	kind error,
	cause error,
) error {
	cmdErr := core.NewCommandError(kind, cause)
	log.Info("⚠️ Rejecting command", "invocation_id", inv.InvocationID, "reason", cmdErr.Error())
	u.sendReply(ctx, inv, cmdErr.Reply())
	return cmdErr
}

// sendReply is best-effort: delivery failures are logged and swallowed.
func (u *PinUseCase) sendReply(ctx context.Context, inv models.CommandInvocation, content string) {
	if err := u.discordClient.SendMessage(ctx, inv.ChannelID, content); err != nil {
		log.Warn("❌ Failed to deliver reply",
			"invocation_id", inv.InvocationID,
			"channel_id", inv.ChannelID,
			"error", err)
	}
}
