package commands

import (
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/guard"
)

var (
	ErrFinishWorkflowCommandIsNotConstructed = errors.New(
		"FinishWorkflowCommand must be created via NewFinishWorkflowCommand constructor",
	)
)

// FinishWorkflowCommand records the terminal outcome of a workflow
// execution: COMPLETED when every stage finished, FAILED when the engine
// gave up on a stage.
type FinishWorkflowCommand struct { //nolint:recvcheck //using for validation
	key     kernel.OrderKey
	outcome RunStatus

	guard guard.ConstructorGuard
}

// NewFinishWorkflowCommand creates a workflow-finish command. The outcome
// must be RunStatusCompleted or RunStatusFailed.
func NewFinishWorkflowCommand(tenantID, orderID string, outcome RunStatus) (FinishWorkflowCommand, error) {
	cmd := FinishWorkflowCommand{
		guard: guard.NewConstructorGuard(),
	}

	key, err := kernel.NewOrderKey(tenantID, orderID)
	if err != nil {
		return FinishWorkflowCommand{}, err
	}
	cmd.key = key

	if outcome != RunStatusCompleted && outcome != RunStatusFailed {
		return FinishWorkflowCommand{}, errs.NewValueIsInvalidError("outcome")
	}
	cmd.outcome = outcome

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinishWorkflowCommand) Validate() error {
	return c.guard.Validate(ErrFinishWorkflowCommandIsNotConstructed)
}

// Key returns the (tenantId, orderId) identity of the order.
func (c FinishWorkflowCommand) Key() kernel.OrderKey {
	return c.key
}

// Outcome returns the terminal outcome to record.
func (c FinishWorkflowCommand) Outcome() RunStatus {
	return c.outcome
}
