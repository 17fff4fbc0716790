package commands

import (
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/guard"
)

var (
	ErrCompleteStageCommandIsNotConstructed = errors.New(
		"CompleteStageCommand must be created via NewCompleteStageCommand constructor",
	)
)

// CompleteStageCommand represents a request to finish the most recently
// started attempt at a stage.
type CompleteStageCommand struct { //nolint:recvcheck //using for validation
	key   kernel.OrderKey
	stage order.Stage

	guard guard.ConstructorGuard
}

// NewCompleteStageCommand creates a command to complete a stage. All
// parameters are required.
func NewCompleteStageCommand(tenantID, orderID, stage string) (CompleteStageCommand, error) {
	cmd := CompleteStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKey(tenantID, orderID),
		cmd.setStage(stage),
	); err != nil {
		return CompleteStageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStageCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStageCommandIsNotConstructed)
}

// Key returns the (tenantId, orderId) identity of the order.
func (c CompleteStageCommand) Key() kernel.OrderKey {
	return c.key
}

// Stage returns the stage to complete.
func (c CompleteStageCommand) Stage() order.Stage {
	return c.stage
}

func (c *CompleteStageCommand) setKey(tenantID, orderID string) error {
	key, err := kernel.NewOrderKey(tenantID, orderID)
	if err != nil {
		return err
	}

	c.key = key
	return nil
}

func (c *CompleteStageCommand) setStage(stage string) error {
	parsed, err := order.StageFromString(stage)
	if err != nil {
		return err
	}

	c.stage = parsed
	return nil
}
