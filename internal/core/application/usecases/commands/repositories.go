// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, then best-effort event publication.
package commands

import (
	"context"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure the stage history and the order
// pointer commit atomically.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StageRecordRepoFactory provides access to the stage history repository
	// within a transaction.
	StageRecordRepoFactory interface {
		StageRecordRepository() ports.StageRecordRepository
	}

	// UoW manages transactions across the order table and the stage history.
	// Stage transitions write the stage record first, then the order
	// pointer, in the same transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		StageRecordRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
