package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/events"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/ports"

	"github.com/google/uuid"
)

// StartWorkflowCommandHandler takes ownership of an order: it allocates an
// execution handle, marks the workflow started, records the COOKING stage as
// IN_PROGRESS, emits StageStarted and WorkflowStarted events, and hands the
// execution to the workflow engine.
//
// The execution handle is suffixed with a random identifier so retried start
// signals for the same order never collide on the engine side.
type StartWorkflowCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	engine     ports.WorkflowEngine
	logger     *slog.Logger
}

// NewStartWorkflowCommandHandler creates a handler for workflow starts.
func NewStartWorkflowCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	engine ports.WorkflowEngine,
	logger *slog.Logger,
) StartWorkflowCommandHandler {
	return StartWorkflowCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		engine:     engine,
		logger:     logger.With("component", "start_workflow_handler"),
	}
}

// Handle processes the workflow-start command and returns the allocated
// execution handle. The stage record, the order pointer and the workflow
// status commit in one transaction before any event or engine call; a
// retried start while COOKING is still in progress does not append a
// duplicate record.
func (h *StartWorkflowCommandHandler) Handle(ctx context.Context, cmd StartWorkflowCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	executionRef := newExecutionRef(cmd.Key())
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	aggregate, err := orders.Get(ctx, cmd.Key())
	if err != nil {
		return "", err
	}

	if err = aggregate.StartWorkflow(executionRef, now); err != nil {
		return "", err
	}

	records := uow.StageRecordRepository()

	var record *stagerecord.Record
	inProgress, err := records.HasInProgress(ctx, cmd.Key(), order.StageCooking)
	if err != nil {
		return "", err
	}
	if !inProgress {
		record, err = stagerecord.NewRecord(cmd.Key(), order.StageCooking, "", now)
		if err != nil {
			return "", err
		}
		if err = records.Add(ctx, record); err != nil {
			return "", err
		}
	}

	if err = aggregate.AdvanceStage(order.StageCooking, now); err != nil {
		return "", err
	}

	if err = orders.Update(ctx, aggregate); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	if record != nil {
		h.publishStageStarted(ctx, record)
	}
	h.publishWorkflowStarted(ctx, cmd, executionRef, now)

	execution := ports.Execution{
		Ref:          executionRef,
		Key:          cmd.Key(),
		CustomerID:   cmd.CustomerID(),
		InitialStage: order.StageCooking,
	}
	if err = h.engine.StartExecution(ctx, execution); err != nil {
		return "", err
	}

	return executionRef, nil
}

func (h *StartWorkflowCommandHandler) publishStageStarted(ctx context.Context, record *stagerecord.Record) {
	event := events.StageStarted{
		TenantID:   record.Key().TenantID().String(),
		OrderID:    record.Key().OrderID().String(),
		Stage:      record.Stage().String(),
		AssignedTo: record.AssignedTo(),
		Timestamp:  record.StartedAt(),
	}

	if err := h.publisher.Publish(ctx, events.SourceStages, events.TypeStageStarted, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish StageStarted event",
			"order", record.Key().String(), "error", err)
	}
}

func (h *StartWorkflowCommandHandler) publishWorkflowStarted(
	ctx context.Context,
	cmd StartWorkflowCommand,
	executionRef string,
	now time.Time,
) {
	event := events.WorkflowStarted{
		TenantID:     cmd.Key().TenantID().String(),
		OrderID:      cmd.Key().OrderID().String(),
		CustomerID:   cmd.CustomerID(),
		Stage:        order.StageCooking.String(),
		ExecutionRef: executionRef,
		Timestamp:    now,
	}

	if err := h.publisher.Publish(ctx, events.SourceWorkflow, events.TypeWorkflowStarted, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish WorkflowStarted event",
			"order", cmd.Key().String(), "error", err)
	}
}

// newExecutionRef builds the opaque execution handle for an order. The
// random suffix keeps retried invocations of the same order distinct.
func newExecutionRef(key kernel.OrderKey) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", key.TenantID(), key.OrderID(), suffix)
}
