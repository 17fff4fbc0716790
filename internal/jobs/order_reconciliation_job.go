package jobs

import (
	"context"
	"log/slog"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderReconciliationJob periodically repairs orders whose current-stage
// pointer diverged from the stage history, for example after a crash between
// the record write and the pointer update.
type OrderReconciliationJob struct {
	handler commands.ReconcileOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderReconciliationJob creates the reconciliation job. Uses
// ReconcileOrdersCommandHandler to sweep all active orders every 30 seconds.
func NewOrderReconciliationJob(handler commands.ReconcileOrdersCommandHandler, logger *slog.Logger) *OrderReconciliationJob {
	return &OrderReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_reconciliation_job"),
	}
}

// Start begins the reconciliation sweep on a 30 second schedule.
func (j *OrderReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReconcileOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order reconciliation job started (running every 30 seconds)")
	return nil
}

// Stop stops the reconciliation job.
func (j *OrderReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order reconciliation job stopped")
}
