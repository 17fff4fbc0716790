package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
)

// ReconcileOrdersCommandHandler repairs order stage pointers from the record
// history. The history is append-only and written before the pointer, so
// after a crash between the two writes the pointer can lag behind; this
// handler recomputes it from the most recently started record and rewrites
// the order when they disagree.
type ReconcileOrdersCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewReconcileOrdersCommandHandler creates a handler for the reconciliation
// sweep.
func NewReconcileOrdersCommandHandler(uowFactory UoWFactory, logger *slog.Logger) ReconcileOrdersCommandHandler {
	return ReconcileOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconcile_orders_handler"),
	}
}

// Handle processes the reconciliation command. All repairs for one sweep
// commit in a single transaction; orders whose pointer already matches the
// history are left untouched.
func (h *ReconcileOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	records := uow.StageRecordRepository()

	running, err := orders.GetAllInWorkflowStartedStatus(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range running {
		history, historyErr := records.GetHistory(ctx, aggregate.Key())
		if historyErr != nil {
			return historyErr
		}

		expected := latestStage(history)
		if expected == order.StageUnknown || expected == aggregate.CurrentStage() {
			continue
		}

		if err = aggregate.AdvanceStage(expected, time.Now().UTC()); err != nil {
			return err
		}

		if err = orders.Update(ctx, aggregate); err != nil {
			return err
		}

		h.logger.InfoContext(ctx, "Repaired diverged stage pointer",
			"order", aggregate.Key().String(), "stage", expected.String())
	}

	return uow.Commit(ctx)
}

// latestStage picks the stage of the most recently started record. History
// is ordered by startedAt ascending, so the last entry wins.
func latestStage(history []*stagerecord.Record) order.Stage {
	if len(history) == 0 {
		return order.StageUnknown
	}
	return history[len(history)-1].Stage()
}
