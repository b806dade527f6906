package pin

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	discordclient "pinbot/clients/discord"
	"pinbot/core"
	"pinbot/models"
)

// Test constants for consistent test data
const (
	testPrefix          = "-"
	testGuildID         = uint64(432708847304704010)
	testOtherGuildID    = uint64(111111111111111111)
	testTargetChannelID = "432708847304704013"
	testTargetMessageID = "1008041568613191813"
	testInvokeChannelID = "432708847304704099"
	testInvokeMessageID = "1008041568613199999"
	testUserID          = "200000000000000001"
	testInvocationID    = "inv_01G0EZ1XTM37C5X11SQTDNCTM1"
	testMessageURL      = "https://discord.com/channels/432708847304704010/432708847304704013/1008041568613191813"
)

// pinUseCaseTestFixture encapsulates test setup and mocks
type pinUseCaseTestFixture struct {
	useCase       *PinUseCase
	discordClient *discordclient.MockDiscordClient
	ctx           context.Context
}

func setupPinUseCaseTest(t *testing.T) *pinUseCaseTestFixture {
	discordClient := new(discordclient.MockDiscordClient)
	f := &pinUseCaseTestFixture{
		useCase:       NewPinUseCase(discordClient, testPrefix),
		discordClient: discordClient,
		ctx:           context.Background(),
	}
	t.Cleanup(func() { discordClient.AssertExpectations(t) })
	return f
}

func newInvocation(content string, guildID mo.Option[uint64]) models.CommandInvocation {
	return models.CommandInvocation{
		InvocationID: testInvocationID,
		MessageID:    testInvokeMessageID,
		ChannelID:    testInvokeChannelID,
		UserID:       testUserID,
		Content:      content,
		GuildID:      guildID,
	}
}

func targetMessage() *models.DiscordMessage {
	return &models.DiscordMessage{
		ID:        testTargetMessageID,
		ChannelID: testTargetChannelID,
		GuildID:   "432708847304704010",
	}
}

func TestResolveTarget_Success(t *testing.T) {
	f := setupPinUseCaseTest(t)
	expected := targetMessage()

	f.discordClient.On("FetchMessage", mock.Anything, testTargetChannelID, testTargetMessageID).
		Return(expected, nil).Once()

	target, err := f.useCase.ResolveTarget(f.ctx, "-pin ", newInvocation("-pin "+testMessageURL, mo.Some(testGuildID)))

	require.NoError(t, err)
	assert.Same(t, expected, target)
	f.discordClient.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveTarget_Rejections(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		guildID       mo.Option[uint64]
		expectedKind  error
		expectedReply string
	}{
		{
			name:          "command without argument",
			content:       "-pin",
			guildID:       mo.Some(testGuildID),
			expectedKind:  core.ErrMissingInput,
			expectedReply: "Input required: message URL",
		},
		{
			name:          "different command prefix",
			content:       "-unpin " + testMessageURL,
			guildID:       mo.Some(testGuildID),
			expectedKind:  core.ErrMissingInput,
			expectedReply: "Input required: message URL",
		},
		{
			name:          "newline instead of space after command",
			content:       "-pin\n" + testMessageURL,
			guildID:       mo.Some(testGuildID),
			expectedKind:  core.ErrMissingInput,
			expectedReply: "Input required: message URL",
		},
		{
			name:          "empty remainder",
			content:       "-pin ",
			guildID:       mo.Some(testGuildID),
			expectedKind:  core.ErrMalformedURL,
			expectedReply: "Invalid message URL",
		},
		{
			name:          "not a url",
			content:       "-pin hello there",
			guildID:       mo.Some(testGuildID),
			expectedKind:  core.ErrMalformedURL,
			expectedReply: "Invalid message URL",
		},
		{
			name:          "extra space before url is not trimmed",
			content:       "-pin  " + testMessageURL,
			guildID:       mo.Some(testGuildID),
			expectedKind:  core.ErrMalformedURL,
			expectedReply: "Invalid message URL",
		},
		{
			name:          "trailing text after url",
			content:       "-pin " + testMessageURL + " thanks",
			guildID:       mo.Some(testGuildID),
			expectedKind:  core.ErrMalformedURL,
			expectedReply: "Invalid message URL",
		},
		{
			name:          "direct message",
			content:       "-pin " + testMessageURL,
			guildID:       mo.None[uint64](),
			expectedKind:  core.ErrNoGuildContext,
			expectedReply: "Message sent outside of guild?",
		},
		{
			name:          "url from another guild",
			content:       "-pin " + testMessageURL,
			guildID:       mo.Some(testOtherGuildID),
			expectedKind:  core.ErrGuildMismatch,
			expectedReply: "No. Absolutely not.",
		},
		{
			name:          "malformed url checked before guild presence",
			content:       "-pin nope",
			guildID:       mo.None[uint64](),
			expectedKind:  core.ErrMalformedURL,
			expectedReply: "Invalid message URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupPinUseCaseTest(t)
			f.discordClient.On("SendMessage", mock.Anything, testInvokeChannelID, tt.expectedReply).
				Return(nil).Once()

			target, err := f.useCase.ResolveTarget(f.ctx, "-pin ", newInvocation(tt.content, tt.guildID))

			assert.Nil(t, target)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedKind)
			assert.True(t, core.IsCommandError(err))
			f.discordClient.AssertNumberOfCalls(t, "SendMessage", 1)
			f.discordClient.AssertNotCalled(t, "FetchMessage", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestResolveTarget_GuildMismatchNeverFetches(t *testing.T) {
	otherGuilds := []uint64{0, 1, testGuildID - 1, testGuildID + 1, ^uint64(0)}

	for _, guildID := range otherGuilds {
		f := setupPinUseCaseTest(t)
		f.discordClient.On("SendMessage", mock.Anything, testInvokeChannelID, "No. Absolutely not.").
			Return(nil).Once()

		target, err := f.useCase.ResolveTarget(f.ctx, "-pin ", newInvocation("-pin "+testMessageURL, mo.Some(guildID)))

		assert.Nil(t, target)
		assert.ErrorIs(t, err, core.ErrGuildMismatch)
		f.discordClient.AssertNotCalled(t, "FetchMessage", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestResolveTarget_FetchFailed(t *testing.T) {
	f := setupPinUseCaseTest(t)
	fetchErr := errors.New("HTTP 404 Not Found, {\"message\": \"Unknown Message\"}")

	f.discordClient.On("FetchMessage", mock.Anything, testTargetChannelID, testTargetMessageID).
		Return(nil, fetchErr).Once()
	f.discordClient.On("SendMessage", mock.Anything, testInvokeChannelID, "Couldn't get message").
		Return(nil).Once()

	target, err := f.useCase.ResolveTarget(f.ctx, "-pin ", newInvocation("-pin "+testMessageURL, mo.Some(testGuildID)))

	assert.Nil(t, target)
	assert.ErrorIs(t, err, core.ErrFetchFailed)
	assert.ErrorIs(t, err, fetchErr)
}

func TestResolveTarget_ReplyDeliveryFailureIsSwallowed(t *testing.T) {
	f := setupPinUseCaseTest(t)
	f.discordClient.On("SendMessage", mock.Anything, testInvokeChannelID, "Invalid message URL").
		Return(errors.New("HTTP 403 Forbidden")).Once()

	target, err := f.useCase.ResolveTarget(f.ctx, "-pin ", newInvocation("-pin nope", mo.Some(testGuildID)))

	assert.Nil(t, target)
	assert.ErrorIs(t, err, core.ErrMalformedURL)
	assert.NotContains(t, err.Error(), "403")
	f.discordClient.AssertNumberOfCalls(t, "SendMessage", 1)
}
