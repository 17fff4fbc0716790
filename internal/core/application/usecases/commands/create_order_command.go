package commands

import (
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// OrderItemInput is one product line as received from the intake system.
type OrderItemInput struct {
	ProductName string
	Quantity    int
}

// CreateOrderCommand registers a newly arrived order with workflow status
// NOT_STARTED. Orders arrive through OrderCreated events from the intake
// system; the workflow is started separately.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	key        kernel.OrderKey
	customerID string
	items      []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates an order-registration command. customerID
// and items are optional; item lines that are present must be valid.
func NewCreateOrderCommand(tenantID, orderID, customerID string, items []OrderItemInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	key, err := kernel.NewOrderKey(tenantID, orderID)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.key = key
	cmd.customerID = customerID

	for _, line := range items {
		item, itemErr := order.NewItem(line.ProductName, line.Quantity)
		if itemErr != nil {
			return CreateOrderCommand{}, itemErr
		}
		cmd.items = append(cmd.items, item)
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Key returns the (tenantId, orderId) identity of the new order.
func (c CreateOrderCommand) Key() kernel.OrderKey {
	return c.key
}

// CustomerID returns the customer reference, possibly empty.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// Items returns the validated product lines.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}
