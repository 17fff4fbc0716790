// Package jobs provides scheduled background tasks for the orchestrator,
// implemented as cron-based jobs on github.com/robfig/cron/v3.
package jobs

import (
	"fmt"
	"log/slog"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderReconciliationJob *OrderReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	reconcileOrdersHandler commands.ReconcileOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderReconciliationJob: NewOrderReconciliationJob(reconcileOrdersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start order reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderReconciliationJob.Stop()
}
