package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/events"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/ports"
)

// RunStatus is the outcome the workflow engine consumes after each stage
// invocation.
type RunStatus string

const (
	RunStatusInProgress RunStatus = "IN_PROGRESS"
	RunStatusCompleted  RunStatus = "COMPLETED"
	RunStatusFailed     RunStatus = "FAILED"
)

// RunStageResult carries the outcome of a single stage invocation back to
// the engine. Err is populated only when Status is FAILED; retry and backoff
// decisions belong to the engine, not to this handler.
type RunStageResult struct {
	Status    RunStatus
	NextStage order.Stage
	Err       error
}

// RunStageCommandHandler performs the side effect of one stage of a running
// workflow. The actual cooking, packing and delivery work happens in
// external systems; here the stage side effect is announcing that the stage
// began. The handler never propagates failures to the engine as panics or
// errors: every failure is folded into a FAILED result.
type RunStageCommandHandler struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewRunStageCommandHandler creates a handler for engine-driven stage
// invocations.
func NewRunStageCommandHandler(publisher ports.EventPublisher, logger *slog.Logger) RunStageCommandHandler {
	return RunStageCommandHandler{
		publisher: publisher,
		logger:    logger.With("component", "run_stage_handler"),
	}
}

// Handle executes one stage invocation. A COMPLETED current stage reports
// completion immediately and emits nothing, so the engine can re-deliver the
// terminal marker without side effects. For any working stage it emits a
// StageStarted announcement and tells the engine which stage follows.
func (h *RunStageCommandHandler) Handle(ctx context.Context, cmd RunStageCommand) RunStageResult {
	if err := cmd.Validate(); err != nil {
		return RunStageResult{Status: RunStatusFailed, Err: err}
	}

	if cmd.CurrentStage().IsTerminal() {
		return RunStageResult{Status: RunStatusCompleted, NextStage: order.StageCompleted}
	}

	event := events.StageStarted{
		TenantID:   cmd.Key().TenantID().String(),
		OrderID:    cmd.Key().OrderID().String(),
		Stage:      cmd.CurrentStage().String(),
		AssignedTo: stagerecord.DefaultAssignee,
		Timestamp:  time.Now().UTC(),
	}

	if err := h.publisher.Publish(ctx, events.SourceStages, events.TypeStageStarted, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish StageStarted event",
			"order", cmd.Key().String(), "stage", cmd.CurrentStage().String(), "error", err)
	}

	return RunStageResult{
		Status:    RunStatusInProgress,
		NextStage: cmd.CurrentStage().Next(),
	}
}
