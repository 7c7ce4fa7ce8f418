package ports

import (
	"context"

	"orders/internal/core/domain/model/fulfillment"
)

// WorkflowStarter starts one fulfillment execution per order.
//
// Start returns once the engine accepted the execution; it does not wait for the
// execution to finish. Starting an order that already has a running execution
// is not an error and does not start a second one.
type WorkflowStarter interface {
	Start(ctx context.Context, payload fulfillment.Payload) (executionID string, err error)
}
