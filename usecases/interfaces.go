package usecases

import (
	"context"

	"pinbot/models"
	"pinbot/usecases/pin"
)

// PinUseCaseInterface defines the interface for pin/unpin command operations
type PinUseCaseInterface interface {
	CommandPrefix() string
	ProcessCommand(ctx context.Context, cmd pin.Command, inv models.CommandInvocation) error
}
