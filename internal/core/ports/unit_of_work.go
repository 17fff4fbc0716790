package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary spanning the order
// table and the stage history. Client code must explicitly manage the
// transaction lifecycle; repositories obtained from an active unit of work
// execute within its transaction.
//
// The stage record is always written before the order pointer inside the
// same transaction, so a committed history can never lag a committed pointer.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no active transaction exists or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no active transaction exists or the rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// StageRecordRepository returns a StageRecordRepository bound to the
	// current transaction.
	StageRecordRepository() StageRecordRepository
}
