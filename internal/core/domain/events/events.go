// Package events defines the lifecycle event payloads published on the event
// bus when an order moves through its workflow. Events are ephemeral
// notifications for external subscribers; nothing in this system reads them
// back, and delivery is best-effort.
package events

import "time"

// Event type names as they appear on the wire.
const (
	TypeStageStarted    = "StageStarted"
	TypeStageCompleted  = "StageCompleted"
	TypeWorkflowStarted = "WorkflowStarted"
)

// Source names identifying the publishing component.
const (
	SourceStages   = "orders.stages"
	SourceWorkflow = "orders.workflow"
)

// StageStarted is published when a stage attempt begins, whether triggered by
// restaurant staff or by the workflow engine.
type StageStarted struct {
	TenantID   string    `json:"tenantId"`
	OrderID    string    `json:"orderId"`
	Stage      string    `json:"stage"`
	AssignedTo string    `json:"assignedTo"`
	Timestamp  time.Time `json:"timestamp"`
}

// StageCompleted is published when a stage attempt finishes. Duration is the
// elapsed time in whole seconds.
type StageCompleted struct {
	TenantID    string    `json:"tenantId"`
	OrderID     string    `json:"orderId"`
	Stage       string    `json:"stage"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
	Duration    int64     `json:"duration"`
}

// WorkflowStarted is published once per workflow start, after the first stage
// has been recorded.
type WorkflowStarted struct {
	TenantID     string    `json:"tenantId"`
	OrderID      string    `json:"orderId"`
	CustomerID   string    `json:"customerId,omitempty"`
	Stage        string    `json:"stage"`
	ExecutionRef string    `json:"executionRef"`
	Timestamp    time.Time `json:"timestamp"`
}

// OrderCreated is the inbound event from the order-intake system that
// triggers workflow orchestration.
type OrderCreated struct {
	TenantID   string             `json:"tenantId"`
	OrderID    string             `json:"orderId"`
	CustomerID string             `json:"customerId,omitempty"`
	Items      []OrderCreatedItem `json:"items,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
}

// OrderCreatedItem is one product line in an OrderCreated event.
type OrderCreatedItem struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}
