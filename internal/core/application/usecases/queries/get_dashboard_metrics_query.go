package queries

import (
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/guard"
)

var (
	ErrGetDashboardMetricsQueryIsNotConstructed = errors.New(
		"GetDashboardMetricsQuery must be created via NewGetDashboardMetricsQuery constructor",
	)
)

// GetDashboardMetricsQuery retrieves the detailed metric panels for one
// tenant: stage distribution, mean stage durations, daily volumes and the
// best-selling products.
type GetDashboardMetricsQuery struct {
	tenantID kernel.TenantID

	guard guard.ConstructorGuard
}

// NewGetDashboardMetricsQuery creates a metrics query scoped to one tenant.
func NewGetDashboardMetricsQuery(tenantID string) (GetDashboardMetricsQuery, error) {
	tenant, err := kernel.NewTenantID(tenantID)
	if err != nil {
		return GetDashboardMetricsQuery{}, err
	}

	return GetDashboardMetricsQuery{
		tenantID: tenant,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardMetricsQueryIsNotConstructed)
}

// TenantID returns the tenant the metrics are scoped to.
func (q GetDashboardMetricsQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// DailyCount is one day of order volume.
type DailyCount struct {
	Date  string // YYYY-MM-DD, UTC
	Count int64
}

// ProductCount is one product line aggregated across orders.
type ProductCount struct {
	ProductName string
	Quantity    int64
}

// GetDashboardMetricsQueryResponse carries the metric panels.
type GetDashboardMetricsQueryResponse struct {
	// StageDistribution counts orders per current stage, keyed by stage name.
	StageDistribution map[string]int64

	// MeanStageDurations maps stage name to the average completed duration
	// in whole seconds.
	MeanStageDurations map[string]int64

	// LastSevenDays lists order volumes per day, oldest first. Days with no
	// orders are absent.
	LastSevenDays []DailyCount

	// TopProducts lists the five best-selling products by total quantity.
	TopProducts []ProductCount
}
