package kernel

import (
	"fmt"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
)

// TenantID identifies the restaurant/brand an order belongs to. It is the
// isolation boundary for every read and write in the system: no operation may
// cross tenants and no default tenant exists.
//
// The zero value is invalid; construct via NewTenantID.
type TenantID struct {
	value string
}

// NewTenantID creates a TenantID from its string form.
// Returns a ValueIsRequiredError when the string is empty.
func NewTenantID(value string) (TenantID, error) {
	if value == "" {
		return TenantID{}, errs.NewValueIsRequiredError("tenantId")
	}
	return TenantID{value: value}, nil
}

// Validate checks that the TenantID was constructed via NewTenantID.
func (t TenantID) Validate() error {
	if t.value == "" {
		return errs.NewValueIsRequiredError("tenantId")
	}
	return nil
}

// String returns the tenant identifier.
func (t TenantID) String() string {
	return t.value
}

// IsEqual compares two tenant identifiers.
func (t TenantID) IsEqual(other TenantID) bool {
	return t.value == other.value
}

// OrderID identifies an order within a tenant. Order identifiers are assigned
// by the order-intake system and treated as opaque strings here.
//
// The zero value is invalid; construct via NewOrderID.
type OrderID struct {
	value string
}

// NewOrderID creates an OrderID from its string form.
// Returns a ValueIsRequiredError when the string is empty.
func NewOrderID(value string) (OrderID, error) {
	if value == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderId")
	}
	return OrderID{value: value}, nil
}

// Validate checks that the OrderID was constructed via NewOrderID.
func (o OrderID) Validate() error {
	if o.value == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	return nil
}

// String returns the order identifier.
func (o OrderID) String() string {
	return o.value
}

// IsEqual compares two order identifiers.
func (o OrderID) IsEqual(other OrderID) bool {
	return o.value == other.value
}

// OrderKey is the composite identity (tenantId, orderId) under which all
// orders and stage records are stored. It is a value object: immutable and
// safe to copy.
//
// Example:
//
//	key, err := kernel.NewOrderKey("pardos", "O-1001")
//	if err != nil {
//	    return err
//	}
//	order, err := repo.Get(ctx, key)
type OrderKey struct {
	tenantID TenantID
	orderID  OrderID
}

// NewOrderKey creates an OrderKey from raw tenant and order identifiers.
// Both parts are required.
func NewOrderKey(tenantID, orderID string) (OrderKey, error) {
	tenant, err := NewTenantID(tenantID)
	if err != nil {
		return OrderKey{}, err
	}

	order, err := NewOrderID(orderID)
	if err != nil {
		return OrderKey{}, err
	}

	return OrderKey{tenantID: tenant, orderID: order}, nil
}

// Validate checks both components of the key.
func (k OrderKey) Validate() error {
	if err := k.tenantID.Validate(); err != nil {
		return err
	}
	return k.orderID.Validate()
}

// TenantID returns the tenant component of the key.
func (k OrderKey) TenantID() TenantID {
	return k.tenantID
}

// OrderID returns the order component of the key.
func (k OrderKey) OrderID() OrderID {
	return k.orderID
}

// IsEqual compares two keys component-wise.
func (k OrderKey) IsEqual(other OrderKey) bool {
	return k.tenantID.IsEqual(other.tenantID) && k.orderID.IsEqual(other.orderID)
}

// String renders the key for logs and error messages.
func (k OrderKey) String() string {
	return fmt.Sprintf("%s/%s", k.tenantID, k.orderID)
}
