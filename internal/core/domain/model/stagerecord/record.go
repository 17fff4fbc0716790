package stagerecord

import (
	"errors"
	"fmt"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
)

// DefaultAssignee is recorded when the caller does not name an actor.
const DefaultAssignee = "System"

var (
	// ErrRecordIsNotConstructed is returned when a Record instance was not
	// created through NewRecord or RestoreRecord.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")

	// ErrRecordAlreadyCompleted is returned on a second completion attempt.
	// Completed records are immutable history.
	ErrRecordAlreadyCompleted = errors.New("stage record is already completed")
)

// Record is one attempt at a preparation stage for one order. Records form
// an append-only history identified by (tenantId, orderId, stage, startedAt);
// they are created IN_PROGRESS, mutated once to COMPLETED and never deleted.
//
// Invariant (enforced by the orchestrator, not here): at most one record per
// (tenantId, orderId, stage) is IN_PROGRESS at a time.
type Record struct {
	key        kernel.OrderKey
	stage      order.Stage
	status     Status
	startedAt  time.Time
	finishedAt *time.Time
	assignedTo string

	isConstructed bool
}

// NewRecord starts a stage attempt. The stage must be a work stage; the
// terminal COMPLETED marker never gets a record. An empty assignedTo falls
// back to DefaultAssignee.
func NewRecord(key kernel.OrderKey, stage order.Stage, assignedTo string, now time.Time) (*Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := stage.Validate(); err != nil {
		return nil, err
	}
	if stage.IsTerminal() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%s is a terminal marker, not a startable stage", stage),
		)
	}

	if assignedTo == "" {
		assignedTo = DefaultAssignee
	}

	return &Record{
		key:           key,
		stage:         stage,
		status:        InProgress,
		startedAt:     now,
		assignedTo:    assignedTo,
		isConstructed: true,
	}, nil
}

// RestoreRecord reconstructs a record from persistence.
func RestoreRecord(
	key kernel.OrderKey,
	stage order.Stage,
	status Status,
	startedAt time.Time,
	finishedAt *time.Time,
	assignedTo string,
) (*Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := stage.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Record{
		key:           key,
		stage:         stage,
		status:        status,
		startedAt:     startedAt,
		finishedAt:    finishedAt,
		assignedTo:    assignedTo,
		isConstructed: true,
	}, nil
}

// Validate ensures the Record instance was properly constructed.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// Key returns the (tenantId, orderId) identity the record belongs to.
func (r *Record) Key() kernel.OrderKey {
	return r.key
}

// Stage returns the stage this record is an attempt at.
func (r *Record) Stage() order.Stage {
	return r.stage
}

// Status returns IN_PROGRESS or COMPLETED.
func (r *Record) Status() Status {
	return r.status
}

// StartedAt returns the start timestamp. Together with the key and stage it
// identifies the record.
func (r *Record) StartedAt() time.Time {
	return r.startedAt
}

// FinishedAt returns the completion timestamp, nil while IN_PROGRESS.
func (r *Record) FinishedAt() *time.Time {
	return r.finishedAt
}

// AssignedTo returns the actor working the stage.
func (r *Record) AssignedTo() string {
	return r.assignedTo
}

// Complete flips the record to COMPLETED and stamps finishedAt. Returns
// ErrRecordAlreadyCompleted on a repeated attempt and the elapsed duration in
// whole seconds (floor) on success. The duration is never negative: a clock
// reading earlier than startedAt is clamped to zero.
func (r *Record) Complete(now time.Time) (int64, error) {
	if r.status == Completed {
		return 0, ErrRecordAlreadyCompleted
	}

	r.status = Completed
	r.finishedAt = &now
	return r.DurationSeconds(), nil
}

// DurationSeconds returns finishedAt-startedAt in whole seconds (floor),
// or 0 while the record is still IN_PROGRESS.
func (r *Record) DurationSeconds() int64 {
	if r.finishedAt == nil {
		return 0
	}

	seconds := int64(r.finishedAt.Sub(r.startedAt) / time.Second)
	if seconds < 0 {
		return 0
	}
	return seconds
}
