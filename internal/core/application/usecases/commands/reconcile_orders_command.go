package commands

import (
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/guard"
)

var (
	ErrReconcileOrdersCommandIsNotConstructed = errors.New(
		"ReconcileOrdersCommand must be created via NewReconcileOrdersCommand constructor",
	)
)

// ReconcileOrdersCommand triggers a sweep over all orders with a running
// workflow, repairing current-stage pointers that diverged from the
// append-only record history. This is a parameterless batch command run by
// the scheduler.
type ReconcileOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileOrdersCommand creates a command to trigger the reconciliation
// sweep.
func NewReconcileOrdersCommand() ReconcileOrdersCommand {
	return ReconcileOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ReconcileOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrdersCommandIsNotConstructed)
}
