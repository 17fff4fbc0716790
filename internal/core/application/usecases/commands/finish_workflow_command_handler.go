package commands

import (
	"context"
	"time"
)

// FinishWorkflowCommandHandler writes the terminal workflow status on the
// order. On completion the stage pointer moves to the terminal marker; on
// failure it keeps its last value so operators can see where the order
// stopped.
type FinishWorkflowCommandHandler struct {
	uowFactory UoWFactory
}

// NewFinishWorkflowCommandHandler creates a handler for workflow-finish
// operations.
func NewFinishWorkflowCommandHandler(uowFactory UoWFactory) FinishWorkflowCommandHandler {
	return FinishWorkflowCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the workflow-finish command.
func (h *FinishWorkflowCommandHandler) Handle(ctx context.Context, cmd FinishWorkflowCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	aggregate, err := orders.Get(ctx, cmd.Key())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if cmd.Outcome() == RunStatusCompleted {
		err = aggregate.CompleteWorkflow(now)
	} else {
		err = aggregate.FailWorkflow(now)
	}
	if err != nil {
		return err
	}

	if err = orders.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
