package stagerecordrepo

import (
	"context"
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStageRecordRepository implements ports.StageRecordRepository using
// GORM.
type GormStageRecordRepository struct {
	db *gorm.DB
}

// NewGormStageRecordRepository creates a new GORM stage history repository on
// the given connection, which may be a transaction.
func NewGormStageRecordRepository(db *gorm.DB) *GormStageRecordRepository {
	return &GormStageRecordRepository{db: db}
}

// Add appends a new IN_PROGRESS record to the history.
func (r *GormStageRecordRepository) Add(ctx context.Context, record *stagerecord.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("stageRecord", dto.Stage, err)
		}
		return err
	}

	return nil
}

// Complete persists the completed state with a conditional write: the stored
// row must still be IN_PROGRESS. When the condition fails the record was
// completed by a concurrent caller and stagerecord.ErrRecordAlreadyCompleted
// is returned.
func (r *GormStageRecordRepository) Complete(ctx context.Context, record *stagerecord.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Model(&StageRecordDTO{}).
		Where(
			"tenant_id = ? AND order_id = ? AND stage = ? AND started_at = ? AND status = ?",
			dto.TenantID, dto.OrderID, dto.Stage, dto.StartedAt, stagerecord.InProgress.String(),
		).
		Updates(map[string]any{
			"status":      dto.Status,
			"finished_at": dto.FinishedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return stagerecord.ErrRecordAlreadyCompleted
	}

	return nil
}

// GetLatest retrieves the most recently started record for a stage of an
// order, resolving ties between repeated attempts by maximum started_at.
func (r *GormStageRecordRepository) GetLatest(
	ctx context.Context, key kernel.OrderKey, stage order.Stage,
) (*stagerecord.Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var dto StageRecordDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ? AND stage = ?",
			key.TenantID().String(), key.OrderID().String(), stage.String()).
		Order("started_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stageRecord", stage.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// HasInProgress reports whether an IN_PROGRESS record exists for the given
// stage of an order.
func (r *GormStageRecordRepository) HasInProgress(
	ctx context.Context, key kernel.OrderKey, stage order.Stage,
) (bool, error) {
	if err := key.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&StageRecordDTO{}).
		Where("tenant_id = ? AND order_id = ? AND stage = ? AND status = ?",
			key.TenantID().String(), key.OrderID().String(), stage.String(),
			stagerecord.InProgress.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetHistory retrieves all records of an order ordered by started_at
// ascending.
func (r *GormStageRecordRepository) GetHistory(
	ctx context.Context, key kernel.OrderKey,
) ([]*stagerecord.Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var dtos []StageRecordDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", key.TenantID().String(), key.OrderID().String()).
		Order("started_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*stagerecord.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		records = append(records, record)
	}

	return records, nil
}
