package ports

import (
	"context"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
)

// StageRecordRepository defines the persistence contract for the append-only
// stage history. Records are inserted, completed once, and never deleted.
type StageRecordRepository interface {
	// Add persists a new IN_PROGRESS record.
	Add(ctx context.Context, record *stagerecord.Record) error

	// Complete persists the completed state of a record using a conditional
	// write: the stored row must still be IN_PROGRESS. Returns
	// stagerecord.ErrRecordAlreadyCompleted when the condition fails, so two
	// concurrent completions of the same record cannot both succeed.
	Complete(ctx context.Context, record *stagerecord.Record) error

	// GetLatest retrieves the most recently started record for the given
	// stage of an order (tie-break: maximum startedAt). Returns an
	// ObjectNotFoundError when no record exists.
	GetLatest(ctx context.Context, key kernel.OrderKey, stage order.Stage) (*stagerecord.Record, error)

	// HasInProgress reports whether an IN_PROGRESS record exists for the
	// given stage of an order.
	HasInProgress(ctx context.Context, key kernel.OrderKey, stage order.Stage) (bool, error)

	// GetHistory retrieves all records of an order ordered by startedAt
	// ascending.
	GetHistory(ctx context.Context, key kernel.OrderKey) ([]*stagerecord.Record, error)
}
