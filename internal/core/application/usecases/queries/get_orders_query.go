package queries

import (
	"errors"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/guard"
)

const (
	// DefaultOrdersLimit applies when the caller does not pass a limit.
	DefaultOrdersLimit = 50

	maxOrdersLimit = 500
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery retrieves a tenant's most recent orders with their stage
// history attached, newest first.
type GetOrdersQuery struct {
	tenantID kernel.TenantID
	limit    int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an order-listing query. limit must be within
// [1, 500]; pass 0 for the default.
func NewGetOrdersQuery(tenantID string, limit int) (GetOrdersQuery, error) {
	tenant, err := kernel.NewTenantID(tenantID)
	if err != nil {
		return GetOrdersQuery{}, err
	}

	if limit == 0 {
		limit = DefaultOrdersLimit
	}
	if limit < 1 || limit > maxOrdersLimit {
		return GetOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxOrdersLimit)
	}

	return GetOrdersQuery{
		tenantID: tenant,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// TenantID returns the tenant the listing is scoped to.
func (q GetOrdersQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// Limit returns the maximum number of orders to return.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// StageRecordResponse is one stage attempt in an order's history.
type StageRecordResponse struct {
	Stage           string
	Status          string
	StartedAt       time.Time
	FinishedAt      *time.Time
	AssignedTo      string
	DurationSeconds int64
}

// GetOrdersQueryResponse is one order with its stage history, ordered by
// startedAt ascending.
type GetOrdersQueryResponse struct {
	OrderID        string
	CustomerID     string
	CurrentStage   string
	WorkflowStatus string
	ExecutionRef   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	History        []StageRecordResponse
}
