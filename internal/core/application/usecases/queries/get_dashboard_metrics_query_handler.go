package queries

import (
	"context"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"

	"gorm.io/gorm"
)

// GetDashboardMetricsQueryHandler assembles the metric panels from the
// orders, order_items and stage_records tables.
type GetDashboardMetricsQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardMetricsQueryHandler creates a handler for dashboard metrics
// queries.
func NewGetDashboardMetricsQueryHandler(db *gorm.DB) GetDashboardMetricsQueryHandler {
	return GetDashboardMetricsQueryHandler{db: db}
}

// Handle executes the four panel queries. Panels are independent reads; a
// dashboard refresh does not need them to be a consistent snapshot.
func (h GetDashboardMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardMetricsQuery,
) (GetDashboardMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	tenant := query.TenantID().String()

	distribution, err := h.stageDistribution(ctx, tenant)
	if err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	durations, err := h.meanStageDurations(ctx, tenant)
	if err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	daily, err := h.lastSevenDays(ctx, tenant)
	if err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	products, err := h.topProducts(ctx, tenant)
	if err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	return GetDashboardMetricsQueryResponse{
		StageDistribution:  distribution,
		MeanStageDurations: durations,
		LastSevenDays:      daily,
		TopProducts:        products,
	}, nil
}

func (h GetDashboardMetricsQueryHandler) stageDistribution(
	ctx context.Context, tenant string,
) (map[string]int64, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT current_stage, COUNT(*)
		FROM orders
		WHERE tenant_id = ? AND current_stage <> ''
		GROUP BY current_stage
	`, tenant).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distribution := make(map[string]int64)
	for rows.Next() {
		var stage string
		var count int64
		if err = rows.Scan(&stage, &count); err != nil {
			return nil, err
		}
		distribution[stage] = count
	}

	return distribution, rows.Err()
}

func (h GetDashboardMetricsQueryHandler) meanStageDurations(
	ctx context.Context, tenant string,
) (map[string]int64, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT stage, FLOOR(AVG(EXTRACT(EPOCH FROM finished_at - started_at)))::bigint
		FROM stage_records
		WHERE tenant_id = ? AND status = ?
		GROUP BY stage
	`, tenant, stagerecord.Completed.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	durations := make(map[string]int64)
	for rows.Next() {
		var stage string
		var mean int64
		if err = rows.Scan(&stage, &mean); err != nil {
			return nil, err
		}
		durations[stage] = mean
	}

	return durations, rows.Err()
}

func (h GetDashboardMetricsQueryHandler) lastSevenDays(
	ctx context.Context, tenant string,
) ([]DailyCount, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD'), COUNT(*)
		FROM orders
		WHERE tenant_id = ?
		  AND created_at >= date_trunc('day', now() AT TIME ZONE 'utc') - INTERVAL '6 days'
		GROUP BY 1
		ORDER BY 1
	`, tenant).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	daily := make([]DailyCount, 0)
	for rows.Next() {
		var day DailyCount
		if err = rows.Scan(&day.Date, &day.Count); err != nil {
			return nil, err
		}
		daily = append(daily, day)
	}

	return daily, rows.Err()
}

func (h GetDashboardMetricsQueryHandler) topProducts(
	ctx context.Context, tenant string,
) ([]ProductCount, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_name, SUM(quantity)
		FROM order_items
		WHERE tenant_id = ?
		GROUP BY product_name
		ORDER BY SUM(quantity) DESC, product_name
		LIMIT 5
	`, tenant).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]ProductCount, 0)
	for rows.Next() {
		var product ProductCount
		if err = rows.Scan(&product.ProductName, &product.Quantity); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}
