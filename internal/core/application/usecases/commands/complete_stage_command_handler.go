package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/events"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/ports"
)

// CompleteStageCommandHandler finishes the most recently started attempt at
// a stage: it flips the record to COMPLETED with a conditional write,
// computes the elapsed duration in whole seconds and emits a StageCompleted
// event.
//
// Retrying a completion is safe: locating the most recent record is
// deterministic, and the conditional write guarantees only one of two
// concurrent completions can succeed, so completion events are never
// double-emitted for the same record.
type CompleteStageCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompleteStageCommandHandler creates a handler for stage-completion
// operations.
func NewCompleteStageCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompleteStageCommandHandler {
	return CompleteStageCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "complete_stage_handler"),
	}
}

// Handle processes the completion command and returns the stage duration in
// whole seconds. Returns an ObjectNotFoundError when no record exists for
// the stage, and stagerecord.ErrRecordAlreadyCompleted when the latest
// record was already completed; neither case performs any write.
func (h *CompleteStageCommandHandler) Handle(ctx context.Context, cmd CompleteStageCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	records := uow.StageRecordRepository()

	record, err := records.GetLatest(ctx, cmd.Key(), cmd.Stage())
	if err != nil {
		return 0, err
	}

	duration, err := record.Complete(time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = records.Complete(ctx, record); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.publishCompleted(ctx, record, duration)

	return duration, nil
}

func (h *CompleteStageCommandHandler) publishCompleted(ctx context.Context, record *stagerecord.Record, duration int64) {
	event := events.StageCompleted{
		TenantID:    record.Key().TenantID().String(),
		OrderID:     record.Key().OrderID().String(),
		Stage:       record.Stage().String(),
		StartedAt:   record.StartedAt(),
		CompletedAt: *record.FinishedAt(),
		Duration:    duration,
	}

	if err := h.publisher.Publish(ctx, events.SourceStages, events.TypeStageCompleted, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish StageCompleted event",
			"order", record.Key().String(), "stage", record.Stage().String(), "error", err)
	}
}
