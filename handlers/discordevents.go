package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/gammazero/workerpool"
	"github.com/samber/mo"

	"pinbot/core"
	"pinbot/core/log"
	"pinbot/middleware"
	"pinbot/models"
	"pinbot/usecases"
	"pinbot/usecases/pin"
)

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	pinUseCase       usecases.PinUseCaseInterface
	alertMiddleware  *middleware.ErrorAlertMiddleware
	workerPool       *workerpool.WorkerPool

	stopMutex sync.RWMutex
	stopped   bool
}

func NewDiscordEventsHandler(
	session *discordgo.Session,
	pinUseCase usecases.PinUseCaseInterface,
	alertMiddleware *middleware.ErrorAlertMiddleware,
	workerPoolSize int,
) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		pinUseCase:       pinUseCase,
		alertMiddleware:  alertMiddleware,
		workerPool:       workerpool.New(workerPoolSize),
	}

	session.AddHandler(handler.handleMessageCreatedEvent)

	// Message content is needed to read the command text
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	return handler
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.discordSDKClient.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Info("🤖 Discord bot is now running and listening for commands",
		"prefix", h.pinUseCase.CommandPrefix())
	return nil
}

// StopBot closes the Discord connection and waits for in-flight commands
func (h *DiscordEventsHandler) StopBot() {
	if err := h.discordSDKClient.Close(); err != nil {
		log.Warn("⚠️ Failed to close Discord session cleanly", "error", err)
	}

	h.stopMutex.Lock()
	h.stopped = true
	h.stopMutex.Unlock()

	h.workerPool.StopWait()
	log.Info("✅ Discord bot stopped")
}

// IsConnected reports whether the gateway session is ready
func (h *DiscordEventsHandler) IsConnected() bool {
	h.discordSDKClient.RLock()
	defer h.discordSDKClient.RUnlock()
	return h.discordSDKClient.DataReady
}

// handleMessageCreatedEvent routes incoming messages to the pin/unpin commands
func (h *DiscordEventsHandler) handleMessageCreatedEvent(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil || m.Author.Bot {
		return
	}

	maybeCmd := matchCommand(h.pinUseCase.CommandPrefix(), m.Content)
	if maybeCmd.IsAbsent() {
		return
	}
	cmd := maybeCmd.MustGet()

	inv, err := mapToCommandInvocation(m.Message)
	if err != nil {
		log.Error("❌ Failed to map Discord message event", "message_id", m.ID, "error", err)
		return
	}

	log.Info("📨 Discord command received",
		"invocation_id", inv.InvocationID,
		"command", cmd.Name(),
		"user", m.Author.Username,
		"guild_id", m.GuildID,
		"channel_id", m.ChannelID)

	h.stopMutex.RLock()
	defer h.stopMutex.RUnlock()
	if h.stopped {
		log.Warn("⚠️ Bot is shutting down - dropping command", "invocation_id", inv.InvocationID)
		return
	}

	h.workerPool.Submit(h.alertMiddleware.WrapCommand(cmd.Name(), func() error {
		return h.pinUseCase.ProcessCommand(context.Background(), cmd, inv)
	}))
}

// matchCommand finds the command whose word directly follows the trigger
// character and is either the whole message or followed by whitespace.
func matchCommand(prefix, content string) mo.Option[pin.Command] {
	rest, found := strings.CutPrefix(content, prefix)
	if !found {
		return mo.None[pin.Command]()
	}

	for _, cmd := range pin.Commands {
		after, found := strings.CutPrefix(rest, cmd.Name())
		if !found {
			continue
		}
		if after == "" {
			return mo.Some(cmd)
		}
		if r, _ := utf8.DecodeRuneInString(after); unicode.IsSpace(r) {
			return mo.Some(cmd)
		}
	}

	return mo.None[pin.Command]()
}

func mapToCommandInvocation(m *discordgo.Message) (models.CommandInvocation, error) {
	guildID := mo.None[uint64]()
	if m.GuildID != "" {
		id, err := strconv.ParseUint(m.GuildID, 10, 64)
		if err != nil {
			return models.CommandInvocation{}, fmt.Errorf("invalid guild ID %q: %w", m.GuildID, err)
		}
		guildID = mo.Some(id)
	}

	userID := ""
	if m.Author != nil {
		userID = m.Author.ID
	}

	return models.CommandInvocation{
		InvocationID: core.NewID("inv"),
		MessageID:    m.ID,
		ChannelID:    m.ChannelID,
		UserID:       userID,
		Content:      m.Content,
		GuildID:      guildID,
	}, nil
}
