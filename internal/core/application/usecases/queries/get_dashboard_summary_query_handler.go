package queries

import (
	"context"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"

	"gorm.io/gorm"
)

// GetDashboardSummaryQueryHandler computes the tenant's headline numbers in
// a single round trip over the orders and stage_records tables.
type GetDashboardSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardSummaryQueryHandler creates a handler for dashboard summary
// queries.
func NewGetDashboardSummaryQueryHandler(db *gorm.DB) GetDashboardSummaryQueryHandler {
	return GetDashboardSummaryQueryHandler{db: db}
}

// Handle executes the summary query. Active orders are those whose workflow
// has not reached a terminal status, mirroring WorkflowStatus.IsActive: a
// registered order that has not started yet counts as active. The mean
// delivery duration considers only completed DELIVERY records; in-progress
// attempts do not skew it.
func (h GetDashboardSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardSummaryQuery,
) (GetDashboardSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardSummaryQueryResponse{}, err
	}

	var response GetDashboardSummaryQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= date_trunc('day', now() AT TIME ZONE 'utc')),
			COUNT(*) FILTER (WHERE workflow_status NOT IN (?, ?))
		FROM orders
		WHERE tenant_id = ?
	`, order.WorkflowCompleted.String(), order.WorkflowFailed.String(), query.TenantID().String()).Row()

	if err := row.Scan(&response.TotalOrders, &response.OrdersToday, &response.ActiveOrders); err != nil {
		return GetDashboardSummaryQueryResponse{}, err
	}

	row = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(FLOOR(AVG(EXTRACT(EPOCH FROM finished_at - started_at)))::bigint, 0)
		FROM stage_records
		WHERE tenant_id = ? AND stage = ? AND status = ?
	`, query.TenantID().String(), order.StageDelivery.String(), stagerecord.Completed.String()).Row()

	if err := row.Scan(&response.MeanDeliverySeconds); err != nil {
		return GetDashboardSummaryQueryResponse{}, err
	}

	return response, nil
}
