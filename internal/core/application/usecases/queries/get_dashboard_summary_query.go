// Package queries contains read-only operations over the order and stage
// history tables. Query handlers bypass the domain model and read with raw
// SQL; they never mutate state.
package queries

import (
	"errors"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/guard"
)

var (
	ErrGetDashboardSummaryQueryIsNotConstructed = errors.New(
		"GetDashboardSummaryQuery must be created via NewGetDashboardSummaryQuery constructor",
	)
)

// GetDashboardSummaryQuery retrieves the headline numbers for one tenant's
// operations dashboard.
type GetDashboardSummaryQuery struct {
	tenantID kernel.TenantID

	guard guard.ConstructorGuard
}

// NewGetDashboardSummaryQuery creates a summary query scoped to one tenant.
// The tenant is required: there is no cross-tenant summary.
func NewGetDashboardSummaryQuery(tenantID string) (GetDashboardSummaryQuery, error) {
	tenant, err := kernel.NewTenantID(tenantID)
	if err != nil {
		return GetDashboardSummaryQuery{}, err
	}

	return GetDashboardSummaryQuery{
		tenantID: tenant,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardSummaryQueryIsNotConstructed)
}

// TenantID returns the tenant the summary is scoped to.
func (q GetDashboardSummaryQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// GetDashboardSummaryQueryResponse carries the headline dashboard numbers.
type GetDashboardSummaryQueryResponse struct {
	// TotalOrders is the all-time order count for the tenant.
	TotalOrders int64

	// OrdersToday counts orders created since UTC midnight.
	OrdersToday int64

	// ActiveOrders counts orders whose workflow has not reached a terminal
	// status; a registered order that has not started yet is active.
	ActiveOrders int64

	// MeanDeliverySeconds is the average duration of completed DELIVERY
	// stages in whole seconds, 0 when none completed yet.
	MeanDeliverySeconds int64
}
