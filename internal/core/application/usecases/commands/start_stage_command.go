package commands

import (
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/guard"
)

var (
	ErrStartStageCommandIsNotConstructed = errors.New(
		"StartStageCommand must be created via NewStartStageCommand constructor",
	)
)

// StartStageCommand represents a request to begin a preparation stage for an
// order, typically triggered by restaurant staff or by the workflow engine.
//
// Example:
//
//	cmd, err := NewStartStageCommand("pardos", "O-1001", "COOKING", "Luis")
//	if err != nil {
//	    return err
//	}
//	record, err := handler.Handle(ctx, cmd)
type StartStageCommand struct { //nolint:recvcheck //using for validation
	key        kernel.OrderKey
	stage      order.Stage
	assignedTo string

	guard guard.ConstructorGuard
}

// NewStartStageCommand creates a command to start a stage. Tenant, order and
// stage are required; assignedTo is optional and defaults to the system
// actor downstream.
func NewStartStageCommand(tenantID, orderID, stage, assignedTo string) (StartStageCommand, error) {
	cmd := StartStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKey(tenantID, orderID),
		cmd.setStage(stage),
	); err != nil {
		return StartStageCommand{}, err
	}

	cmd.assignedTo = assignedTo
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartStageCommand) Validate() error {
	return c.guard.Validate(ErrStartStageCommandIsNotConstructed)
}

// Key returns the (tenantId, orderId) identity of the order.
func (c StartStageCommand) Key() kernel.OrderKey {
	return c.key
}

// Stage returns the stage to start.
func (c StartStageCommand) Stage() order.Stage {
	return c.stage
}

// AssignedTo returns the actor starting the stage, possibly empty.
func (c StartStageCommand) AssignedTo() string {
	return c.assignedTo
}

func (c *StartStageCommand) setKey(tenantID, orderID string) error {
	key, err := kernel.NewOrderKey(tenantID, orderID)
	if err != nil {
		return err
	}

	c.key = key
	return nil
}

func (c *StartStageCommand) setStage(stage string) error {
	parsed, err := order.StageFromString(stage)
	if err != nil {
		return err
	}

	c.stage = parsed
	return nil
}
