// Package stagerecordrepo persists the append-only stage history. Rows are
// inserted IN_PROGRESS, flipped once to COMPLETED with a conditional write
// and never deleted.
package stagerecordrepo

import (
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
)

// StageRecordDTO is one stage attempt row. The composite primary key
// (tenant_id, order_id, stage, started_at) allows repeated attempts at the
// same stage to coexist as separate rows. The partial unique index admits at
// most one IN_PROGRESS row per stage of an order, so concurrent starts that
// both pass the application-level check still cannot both insert.
type StageRecordDTO struct {
	TenantID   string    `gorm:"primaryKey;size:128;uniqueIndex:ux_stage_records_in_progress,priority:1"`
	OrderID    string    `gorm:"primaryKey;size:128;uniqueIndex:ux_stage_records_in_progress,priority:2"`
	Stage      string    `gorm:"primaryKey;size:32;uniqueIndex:ux_stage_records_in_progress,priority:3,where:status = 'IN_PROGRESS'"`
	StartedAt  time.Time `gorm:"primaryKey"`
	Status     string    `gorm:"size:32;index"`
	FinishedAt *time.Time
	AssignedTo string `gorm:"size:128"`
}

// TableName keeps the table name stable regardless of GORM's pluralization.
func (StageRecordDTO) TableName() string {
	return "stage_records"
}

func fromDomain(record *stagerecord.Record) StageRecordDTO {
	return StageRecordDTO{
		TenantID:   record.Key().TenantID().String(),
		OrderID:    record.Key().OrderID().String(),
		Stage:      record.Stage().String(),
		Status:     record.Status().String(),
		StartedAt:  record.StartedAt(),
		FinishedAt: record.FinishedAt(),
		AssignedTo: record.AssignedTo(),
	}
}

func toDomain(dto StageRecordDTO) (*stagerecord.Record, error) {
	key, err := kernel.NewOrderKey(dto.TenantID, dto.OrderID)
	if err != nil {
		return nil, err
	}

	stage, err := order.StageFromString(dto.Stage)
	if err != nil {
		return nil, err
	}

	status, err := stagerecord.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return stagerecord.RestoreRecord(key, stage, status, dto.StartedAt, dto.FinishedAt, dto.AssignedTo)
}
