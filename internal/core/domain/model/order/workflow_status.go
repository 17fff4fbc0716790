package order

import (
	"fmt"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
)

// WorkflowStatus tracks the lifecycle of an order's workflow execution.
//
// State transitions:
//
//	NotStarted ──> WorkflowStarted ──┬──> WorkflowCompleted
//	                    │            │
//	                    └────────────┴──> WorkflowFailed
//	              (restart allowed while started)
//
// Restarting an already started workflow is permitted because the external
// trigger delivers at-least-once; each restart allocates a fresh execution
// handle.
type WorkflowStatus int

const (
	// WorkflowUnknown represents an invalid or undefined status.
	WorkflowUnknown WorkflowStatus = iota

	// WorkflowNotStarted is the initial status of a newly created order.
	WorkflowNotStarted

	// WorkflowStarted indicates the execution engine is driving the order
	// through its stages.
	WorkflowStarted

	// WorkflowCompleted indicates all stages finished. Final.
	WorkflowCompleted

	// WorkflowFailed indicates a stage execution failed. Final.
	WorkflowFailed
)

func getWorkflowStatusStrings() map[WorkflowStatus]string {
	return map[WorkflowStatus]string{
		WorkflowUnknown:    "UNKNOWN",
		WorkflowNotStarted: "NOT_STARTED",
		WorkflowStarted:    "WORKFLOW_STARTED",
		WorkflowCompleted:  "COMPLETED",
		WorkflowFailed:     "FAILED",
	}
}

// WorkflowStatusFromString parses the wire form of a workflow status.
func WorkflowStatusFromString(value string) (WorkflowStatus, error) {
	if value == "" {
		return WorkflowUnknown, errs.NewValueIsRequiredError("workflowStatus")
	}

	for status, str := range getWorkflowStatusStrings() {
		if str == value && status != WorkflowUnknown {
			return status, nil
		}
	}

	return WorkflowUnknown, errs.NewValueIsInvalidErrorWithCause(
		"workflowStatus",
		fmt.Errorf("%q is not a valid workflow status", value),
	)
}

// Validate checks that the WorkflowStatus value is one of the defined statuses.
func (s WorkflowStatus) Validate() error {
	switch s {
	case WorkflowNotStarted, WorkflowStarted, WorkflowCompleted, WorkflowFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"workflowStatus",
			fmt.Errorf("%d is not a valid workflow status", s),
		)
	}
}

// String returns the wire form of the status.
func (s WorkflowStatus) String() string {
	if str, ok := getWorkflowStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsActive reports whether the workflow is still in flight, i.e. neither
// completed nor failed. Used by the dashboard's active-orders count.
func (s WorkflowStatus) IsActive() bool {
	return s == WorkflowNotStarted || s == WorkflowStarted
}

// Start transitions the status to WorkflowStarted.
//
// Valid transitions:
//   - NotStarted -> WorkflowStarted (initial start)
//   - WorkflowStarted -> WorkflowStarted (retried start signal)
//
// Returns an error for completed or failed workflows.
func (s WorkflowStatus) Start() (WorkflowStatus, error) {
	if s != WorkflowNotStarted && s != WorkflowStarted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"workflowStatus",
			fmt.Errorf("%s is not a valid status to start a workflow", s.String()),
		)
	}
	return WorkflowStarted, nil
}

// Complete transitions the status to WorkflowCompleted.
// Only a started workflow can complete.
func (s WorkflowStatus) Complete() (WorkflowStatus, error) {
	if s != WorkflowStarted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"workflowStatus",
			fmt.Errorf("%s is not a valid status to complete a workflow", s.String()),
		)
	}
	return WorkflowCompleted, nil
}

// Fail transitions the status to WorkflowFailed.
// Only a started workflow can fail.
func (s WorkflowStatus) Fail() (WorkflowStatus, error) {
	if s != WorkflowStarted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"workflowStatus",
			fmt.Errorf("%s is not a valid status to fail a workflow", s.String()),
		)
	}
	return WorkflowFailed, nil
}
