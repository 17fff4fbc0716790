package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/events"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/ports"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
)

// StartStageCommandHandler handles the business logic for starting a stage:
// it appends an IN_PROGRESS record to the stage history, moves the order's
// current-stage pointer and emits a StageStarted event.
//
// A second start of a stage that is already IN_PROGRESS is rejected with an
// ObjectAlreadyExistsError, preserving the at-most-one-in-progress invariant.
// The orchestrator does not enforce stage ordering here: staff may start any
// stage; ordering is the workflow engine's concern.
type StartStageCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewStartStageCommandHandler creates a handler for stage-start operations.
func NewStartStageCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) StartStageCommandHandler {
	return StartStageCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "start_stage_handler"),
	}
}

// Handle processes the stage-start command and returns the created record.
// The stage record is written before the order pointer in the same
// transaction; the transition is durable once the commit succeeds,
// independent of event delivery.
func (h *StartStageCommandHandler) Handle(ctx context.Context, cmd StartStageCommand) (*stagerecord.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	records := uow.StageRecordRepository()

	inProgress, err := records.HasInProgress(ctx, cmd.Key(), cmd.Stage())
	if err != nil {
		return nil, err
	}
	if inProgress {
		return nil, errs.NewObjectAlreadyExistsErrorWithCause(
			"stageRecord",
			cmd.Stage().String(),
			fmt.Errorf("stage %s of order %s is already in progress", cmd.Stage(), cmd.Key()),
		)
	}

	now := time.Now().UTC()

	record, err := stagerecord.NewRecord(cmd.Key(), cmd.Stage(), cmd.AssignedTo(), now)
	if err != nil {
		return nil, err
	}

	if err = records.Add(ctx, record); err != nil {
		return nil, err
	}

	orders := uow.OrderRepository()
	aggregate, err := orders.Get(ctx, cmd.Key())
	if err != nil {
		return nil, err
	}

	if err = aggregate.AdvanceStage(cmd.Stage(), now); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishStarted(ctx, record)

	return record, nil
}

// publishStarted emits the StageStarted event. Publication is best-effort:
// failures are logged and never surfaced to the caller.
func (h *StartStageCommandHandler) publishStarted(ctx context.Context, record *stagerecord.Record) {
	event := events.StageStarted{
		TenantID:   record.Key().TenantID().String(),
		OrderID:    record.Key().OrderID().String(),
		Stage:      record.Stage().String(),
		AssignedTo: record.AssignedTo(),
		Timestamp:  record.StartedAt(),
	}

	if err := h.publisher.Publish(ctx, events.SourceStages, events.TypeStageStarted, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish StageStarted event",
			"order", record.Key().String(), "stage", record.Stage().String(), "error", err)
	}
}
