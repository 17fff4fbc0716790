package commands

import (
	"context"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
)

// CreateOrderCommandHandler registers new orders in the order table.
// The order starts with workflow status NOT_STARTED and no current stage;
// orchestration takes over when StartWorkflow runs.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order-registration command. Registering an order that
// already exists fails with an ObjectAlreadyExistsError; callers receiving
// at-least-once intake events treat that as already-done.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	aggregate, err := order.NewOrder(cmd.Key(), cmd.CustomerID(), cmd.Items(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
