package commands

import (
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/guard"
)

var (
	ErrRunStageCommandIsNotConstructed = errors.New(
		"RunStageCommand must be created via NewRunStageCommand constructor",
	)
)

// RunStageCommand is the per-stage unit of work invoked by the workflow
// engine. The engine may deliver the same stage more than once; handling
// must stay safe under at-least-once invocation.
type RunStageCommand struct { //nolint:recvcheck //using for validation
	key          kernel.OrderKey
	currentStage order.Stage

	guard guard.ConstructorGuard
}

// NewRunStageCommand creates a run-stage command for the given order and
// current stage.
func NewRunStageCommand(tenantID, orderID, currentStage string) (RunStageCommand, error) {
	cmd := RunStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	key, err := kernel.NewOrderKey(tenantID, orderID)
	if err != nil {
		return RunStageCommand{}, err
	}
	cmd.key = key

	stage, err := order.StageFromString(currentStage)
	if err != nil {
		return RunStageCommand{}, err
	}
	cmd.currentStage = stage

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RunStageCommand) Validate() error {
	return c.guard.Validate(ErrRunStageCommandIsNotConstructed)
}

// Key returns the (tenantId, orderId) identity of the order.
func (c RunStageCommand) Key() kernel.OrderKey {
	return c.key
}

// CurrentStage returns the stage the engine is executing.
func (c RunStageCommand) CurrentStage() order.Stage {
	return c.currentStage
}
