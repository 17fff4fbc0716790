package commands

import (
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/guard"
)

var (
	ErrStartWorkflowCommandIsNotConstructed = errors.New(
		"StartWorkflowCommand must be created via NewStartWorkflowCommand constructor",
	)
)

// StartWorkflowCommand requests that orchestration take ownership of an
// order and begin driving it through the stage sequence, starting at
// COOKING.
type StartWorkflowCommand struct { //nolint:recvcheck //using for validation
	key        kernel.OrderKey
	customerID string

	guard guard.ConstructorGuard
}

// NewStartWorkflowCommand creates a workflow-start command. Tenant and order
// are required; a missing orderId is reported as an error value, never a
// panic, since start signals come from an external event feed.
func NewStartWorkflowCommand(tenantID, orderID, customerID string) (StartWorkflowCommand, error) {
	cmd := StartWorkflowCommand{
		guard: guard.NewConstructorGuard(),
	}

	key, err := kernel.NewOrderKey(tenantID, orderID)
	if err != nil {
		return StartWorkflowCommand{}, err
	}

	cmd.key = key
	cmd.customerID = customerID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartWorkflowCommand) Validate() error {
	return c.guard.Validate(ErrStartWorkflowCommandIsNotConstructed)
}

// Key returns the (tenantId, orderId) identity of the order.
func (c StartWorkflowCommand) Key() kernel.OrderKey {
	return c.key
}

// CustomerID returns the customer reference, possibly empty.
func (c StartWorkflowCommand) CustomerID() string {
	return c.customerID
}
