package ports

import (
	"context"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
)

// Execution describes one workflow instance handed to the execution engine.
type Execution struct {
	// Ref is the opaque execution handle stored on the order. Unique per
	// invocation: retried starts of the same order get distinct handles.
	Ref string

	// Key identifies the order being driven.
	Key kernel.OrderKey

	// CustomerID is carried through for event payloads. May be empty.
	CustomerID string

	// InitialStage is the stage the workflow begins at.
	InitialStage order.Stage
}

// WorkflowEngine is the external state-machine runner. It re-invokes the
// run-stage operation once per stage (at-least-once) and owns retry/backoff
// and the execution-handle lifecycle; this core only starts it and returns
// control.
type WorkflowEngine interface {
	// StartExecution begins driving the given execution asynchronously.
	// Returns an error only when the engine cannot accept the execution;
	// stage-level failures surface through the order's workflow status.
	StartExecution(ctx context.Context, execution Execution) error
}
