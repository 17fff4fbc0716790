package order

import (
	"errors"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root tracking one restaurant order through its
// preparation workflow. It carries the current-stage pointer, the workflow
// lifecycle status and the opaque execution handle of the running workflow
// instance.
//
// Invariants:
//   - Identified by a valid (tenantId, orderId) key
//   - currentStage always equals the stage of the most recently started
//     stage record (the append-only record history is the source of truth;
//     a diverged pointer is repairable by recomputation)
//   - workflowStatus transitions follow WorkflowStatus rules
//   - Orders are never deleted by this subsystem
type Order struct {
	key          kernel.OrderKey
	customerID   string
	items        []Item
	currentStage Stage
	status       WorkflowStatus
	executionRef string
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewOrder creates a freshly arrived order with workflow status NOT_STARTED
// and no current stage. customerID may be empty; items may be empty.
func NewOrder(key kernel.OrderKey, customerID string, items []Item, now time.Time) (*Order, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		key:           key,
		customerID:    customerID,
		items:         items,
		currentStage:  StageUnknown,
		status:        WorkflowNotStarted,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence. Unlike NewOrder it
// accepts any valid status/stage combination since the stored state already
// passed through the domain once.
func RestoreOrder(
	key kernel.OrderKey,
	customerID string,
	items []Item,
	currentStage Stage,
	status WorkflowStatus,
	executionRef string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if currentStage != StageUnknown {
		if err := currentStage.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		key:           key,
		customerID:    customerID,
		items:         items,
		currentStage:  currentStage,
		status:        status,
		executionRef:  executionRef,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Key returns the composite (tenantId, orderId) identity.
func (o *Order) Key() kernel.OrderKey {
	return o.key
}

// CustomerID returns the customer reference from the intake system.
// Empty when the intake event carried none.
func (o *Order) CustomerID() string {
	return o.customerID
}

// Items returns the product lines of the order.
func (o *Order) Items() []Item {
	return o.items
}

// CurrentStage returns the stage pointer. StageUnknown until the workflow
// has started its first stage.
func (o *Order) CurrentStage() Stage {
	return o.currentStage
}

// Status returns the workflow lifecycle status.
func (o *Order) Status() WorkflowStatus {
	return o.status
}

// ExecutionRef returns the opaque handle of the running workflow instance.
// Empty until StartWorkflow.
func (o *Order) ExecutionRef() string {
	return o.executionRef
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// StartWorkflow records that the execution engine took ownership of the
// order: status moves to WORKFLOW_STARTED and the execution handle is stored.
// A retried start signal on an already started order is accepted and replaces
// the handle (each retry allocates a fresh one).
func (o *Order) StartWorkflow(executionRef string, now time.Time) error {
	if executionRef == "" {
		return errs.NewValueIsRequiredError("executionRef")
	}

	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.executionRef = executionRef
	o.updatedAt = now
	return nil
}

// AdvanceStage moves the current-stage pointer. Called by the orchestrator
// after the stage record has been written; the record history, not this
// pointer, is the source of truth.
func (o *Order) AdvanceStage(stage Stage, now time.Time) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	o.currentStage = stage
	o.updatedAt = now
	return nil
}

// CompleteWorkflow marks the workflow finished. The stage pointer moves to
// the terminal marker.
func (o *Order) CompleteWorkflow(now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.currentStage = StageCompleted
	o.updatedAt = now
	return nil
}

// FailWorkflow marks the workflow failed. The stage pointer keeps its last
// value so operators can see where the order stopped.
func (o *Order) FailWorkflow(now time.Time) error {
	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}
