package ports

import (
	"context"

	"orders/internal/core/domain/model/fulfillment"
)

// PaymentGateway charges the customer for an order.
//
// A returned ChargeOutcome is a definitive decision, approved or declined.
// A returned error means the attempt itself did not complete and may be retried.
type PaymentGateway interface {
	Charge(ctx context.Context, payload fulfillment.Payload) (fulfillment.ChargeOutcome, error)
}
