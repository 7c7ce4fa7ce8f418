package kernel

import (
	"errors"
	"fmt"
)

// OrderKey is the composite identity of a stored order: partition = tenant,
// sort = order. Store operations accept only an OrderKey, never a bare order
// identifier, so a record can't be addressed under the wrong schema.
type OrderKey struct {
	tenantID TenantID
	orderID  UUID
}

// NewOrderKey builds a key from its two halves.
func NewOrderKey(tenantID TenantID, orderID UUID) (OrderKey, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return OrderKey{}, err
	}
	return OrderKey{tenantID: tenantID, orderID: orderID}, nil
}

// OrderKeyFromStrings parses a key carried in a workflow or message payload.
func OrderKeyFromStrings(tenantID, orderID string) (OrderKey, error) {
	tenant, tenantErr := NewTenantID(tenantID)
	id, idErr := UUIDFromString(orderID)
	if err := errors.Join(tenantErr, idErr); err != nil {
		return OrderKey{}, err
	}
	return OrderKey{tenantID: tenant, orderID: id}, nil
}

func (k OrderKey) TenantID() TenantID {
	return k.tenantID
}

func (k OrderKey) OrderID() UUID {
	return k.orderID
}

func (k OrderKey) IsEqual(other OrderKey) bool {
	return k.tenantID.IsEqual(other.tenantID) && k.orderID.IsEqual(other.orderID)
}

// String renders the key as "<tenant>/<order>" for logs and execution identifiers.
func (k OrderKey) String() string {
	return fmt.Sprintf("%s/%s", k.tenantID, k.orderID)
}

func (k OrderKey) Validate() error {
	return errors.Join(k.tenantID.Validate(), k.orderID.Validate())
}
