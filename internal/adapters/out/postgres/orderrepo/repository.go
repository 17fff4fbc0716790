package orderrepo

import (
	"context"
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository on the given
// connection, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its items. A second insert of the same
// (tenantId, orderId) fails with an ObjectAlreadyExistsError.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("order", aggregate.Key().String(), err)
		}
		return err
	}

	return nil
}

// Update saves the mutable columns of an existing order. Items are written
// once at Add and never change afterwards.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("tenant_id = ? AND order_id = ?", dto.TenantID, dto.OrderID).
		Select("CustomerID", "CurrentStage", "WorkflowStatus", "ExecutionRef", "UpdatedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.Key().String())
	}

	return nil
}

// Get retrieves an order with its items by composite key.
func (r *GormOrderRepository) Get(ctx context.Context, key kernel.OrderKey) (*order.Order, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "tenant_id = ? AND order_id = ?", key.TenantID().String(), key.OrderID().String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", key.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInWorkflowStartedStatus retrieves all orders with a running
// workflow, across tenants. Items are not loaded; reconciliation only needs
// the stage pointer.
func (r *GormOrderRepository) GetAllInWorkflowStartedStatus(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "workflow_status = ?", order.WorkflowStarted.String()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
