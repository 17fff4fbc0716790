// Package ports defines the contracts between the application core and its
// collaborators: persistence, the event bus and the workflow execution
// engine. Adapters implement these interfaces; command and query handlers
// consume them.
package ports

import (
	"context"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// Fails when an order with the same (tenantId, orderId) already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its composite key.
	// Returns an ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, key kernel.OrderKey) (*order.Order, error)

	// GetAllInWorkflowStartedStatus retrieves all orders whose workflow is
	// currently running, across tenants. Used by the reconciliation job to
	// repair stage pointers that diverged from the record history.
	GetAllInWorkflowStartedStatus(ctx context.Context) ([]*order.Order, error)
}
