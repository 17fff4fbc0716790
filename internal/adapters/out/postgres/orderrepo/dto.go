// Package orderrepo persists order aggregates. It maps between the domain
// model and the orders/order_items tables; stage history lives in its own
// repository.
package orderrepo

import (
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
)

// OrderDTO is the database row for one order. The composite primary key
// (tenant_id, order_id) is the isolation boundary: every query on this table
// carries the tenant.
type OrderDTO struct {
	TenantID       string `gorm:"primaryKey;size:128"`
	OrderID        string `gorm:"primaryKey;size:128"`
	CustomerID     string `gorm:"size:128"`
	CurrentStage   string `gorm:"size:32;index"`
	WorkflowStatus string `gorm:"size:32;index"`
	ExecutionRef   string `gorm:"size:256"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []ItemDTO `gorm:"foreignKey:TenantID,OrderID;references:TenantID,OrderID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name stable regardless of GORM's pluralization.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one product line of an order.
type ItemDTO struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	TenantID    string `gorm:"size:128;index:idx_order_items_key"`
	OrderID     string `gorm:"size:128;index:idx_order_items_key"`
	ProductName string `gorm:"size:256"`
	Quantity    int
}

// TableName overrides GORM's default for item rows.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
// StageUnknown maps to an empty current_stage column.
func fromDomain(aggregate *order.Order) OrderDTO {
	currentStage := ""
	if aggregate.CurrentStage() != order.StageUnknown {
		currentStage = aggregate.CurrentStage().String()
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			TenantID:    aggregate.Key().TenantID().String(),
			OrderID:     aggregate.Key().OrderID().String(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
		})
	}

	return OrderDTO{
		TenantID:       aggregate.Key().TenantID().String(),
		OrderID:        aggregate.Key().OrderID().String(),
		CustomerID:     aggregate.CustomerID(),
		CurrentStage:   currentStage,
		WorkflowStatus: aggregate.Status().String(),
		ExecutionRef:   aggregate.ExecutionRef(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		Items:          items,
	}
}

// toDomain reconstructs the aggregate from a database row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	key, err := kernel.NewOrderKey(dto.TenantID, dto.OrderID)
	if err != nil {
		return nil, err
	}

	currentStage := order.StageUnknown
	if dto.CurrentStage != "" {
		currentStage, err = order.StageFromString(dto.CurrentStage)
		if err != nil {
			return nil, err
		}
	}

	status, err := order.WorkflowStatusFromString(dto.WorkflowStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ProductName, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		key,
		dto.CustomerID,
		items,
		currentStage,
		status,
		dto.ExecutionRef,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
