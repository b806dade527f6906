package pin

import (
	"context"
	"fmt"

	"pinbot/clients"
	"pinbot/core"
	"pinbot/core/log"
	"pinbot/models"
	"pinbot/utils"
)

// Command is one of the message mutations the bot exposes.
type Command int

const (
	CommandPin Command = iota
	CommandUnpin
)

// Commands lists every registered command in routing order.
var Commands = []Command{CommandPin, CommandUnpin}

func (c Command) Name() string {
	switch c {
	case CommandPin:
		return "pin"
	case CommandUnpin:
		return "unpin"
	default:
		utils.AssertInvariant(false, fmt.Sprintf("unknown command %d", int(c)))
		return ""
	}
}

// PinUseCase handles the pin and unpin text commands
type PinUseCase struct {
	discordClient clients.DiscordClient
	commandPrefix string
}

// NewPinUseCase creates a new instance of PinUseCase. commandPrefix is the
// single trigger character commands start with, e.g. "-".
func NewPinUseCase(discordClient clients.DiscordClient, commandPrefix string) *PinUseCase {
	utils.AssertInvariant(commandPrefix != "", "command prefix cannot be empty")

	return &PinUseCase{
		discordClient: discordClient,
		commandPrefix: commandPrefix,
	}
}

// CommandPrefix returns the configured trigger character.
func (u *PinUseCase) CommandPrefix() string {
	return u.commandPrefix
}

// ExpectedPrefix is the text a command's input must start with: trigger,
// command name and one mandatory space.
func (u *PinUseCase) ExpectedPrefix(cmd Command) string {
	return u.commandPrefix + cmd.Name() + " "
}

func (u *PinUseCase) ProcessCommand(ctx context.Context, cmd Command, inv models.CommandInvocation) error {
	switch cmd {
	case CommandPin:
		return u.ProcessPinCommand(ctx, inv)
	case CommandUnpin:
		return u.ProcessUnpinCommand(ctx, inv)
	default:
		utils.AssertInvariant(false, fmt.Sprintf("unknown command %d", int(cmd)))
		return nil
	}
}

func (u *PinUseCase) ProcessPinCommand(ctx context.Context, inv models.CommandInvocation) error {
	return u.processCommand(ctx, CommandPin, inv, u.discordClient.PinMessage)
}

func (u *PinUseCase) ProcessUnpinCommand(ctx context.Context, inv models.CommandInvocation) error {
	return u.processCommand(ctx, CommandUnpin, inv, u.discordClient.UnpinMessage)
}

func (u *PinUseCase) processCommand(
	ctx context.Context,
	cmd Command,
	inv models.CommandInvocation,
	mutate func(context.Context, *models.DiscordMessage) error,
) error {
	log.Info("📋 Starting to process command",
		"invocation_id", inv.InvocationID,
		"command", cmd.Name(),
		"user_id", inv.UserID,
		"channel_id", inv.ChannelID)

	target, err := u.ResolveTarget(ctx, u.ExpectedPrefix(cmd), inv)
	if err != nil {
		return err
	}

	if err := mutate(ctx, target); err != nil {
		return u.reject(ctx, inv, core.ErrPermissionDenied, err)
	}

	log.Info("✅ Command completed",
		"invocation_id", inv.InvocationID,
		"command", cmd.Name(),
		"message_id", target.ID,
		"target_channel_id", target.ChannelID)
	return nil
}
