package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists a tenant's recent orders and stitches the
// stage history onto each one.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order-listing queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Two reads: the order page first, then
// the histories of exactly those orders.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tenant := query.TenantID().String()

	orders, orderIDs, err := h.orderPage(ctx, tenant, query.Limit())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []GetOrdersQueryResponse{}, nil
	}

	histories, err := h.histories(ctx, tenant, orderIDs)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if history, ok := histories[orders[i].OrderID]; ok {
			orders[i].History = history
		} else {
			orders[i].History = []StageRecordResponse{}
		}
	}

	return orders, nil
}

func (h GetOrdersQueryHandler) orderPage(
	ctx context.Context, tenant string, limit int,
) ([]GetOrdersQueryResponse, []string, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT order_id, customer_id, current_stage, workflow_status, execution_ref, created_at, updated_at
		FROM orders
		WHERE tenant_id = ?
		ORDER BY created_at DESC, order_id DESC
		LIMIT ?
	`, tenant, limit).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0, limit)
	orderIDs := make([]string, 0, limit)
	for rows.Next() {
		var o GetOrdersQueryResponse
		if err = rows.Scan(
			&o.OrderID, &o.CustomerID, &o.CurrentStage, &o.WorkflowStatus,
			&o.ExecutionRef, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, nil, err
		}
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.OrderID)
	}

	return orders, orderIDs, rows.Err()
}

func (h GetOrdersQueryHandler) histories(
	ctx context.Context, tenant string, orderIDs []string,
) (map[string][]StageRecordResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT order_id, stage, status, started_at, finished_at, assigned_to
		FROM stage_records
		WHERE tenant_id = ? AND order_id IN ?
		ORDER BY order_id, started_at
	`, tenant, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories := make(map[string][]StageRecordResponse)
	for rows.Next() {
		var orderID string
		var record StageRecordResponse
		if err = rows.Scan(
			&orderID, &record.Stage, &record.Status,
			&record.StartedAt, &record.FinishedAt, &record.AssignedTo,
		); err != nil {
			return nil, err
		}

		if record.FinishedAt != nil {
			seconds := int64(record.FinishedAt.Sub(record.StartedAt) / time.Second)
			if seconds > 0 {
				record.DurationSeconds = seconds
			}
		}

		histories[orderID] = append(histories[orderID], record)
	}

	return histories, rows.Err()
}
