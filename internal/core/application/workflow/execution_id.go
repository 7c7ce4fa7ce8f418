package workflow

import "orders/internal/core/domain/model/kernel"

// ExecutionID is the engine-independent identity of an order's execution.
// Two starts for the same order resolve to the same id.
func ExecutionID(key kernel.OrderKey) string {
	return "order-" + key.TenantID().String() + "-" + key.OrderID().String()
}
