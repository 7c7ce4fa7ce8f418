package fulfillment

import (
	"fmt"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// ChargeDecision is the definitive answer of the payment step.
type ChargeDecision string

const (
	ChargeSucceeded ChargeDecision = "SUCCESS"
	ChargeDeclined  ChargeDecision = "FAILED"
)

// ChargeOutcome is the business result of a charge attempt that ran to completion.
// It is never retried, whichever decision it carries.
type ChargeOutcome struct {
	OrderID  string         `json:"orderId"`
	Decision ChargeDecision `json:"status"`
	Reason   string         `json:"reason,omitempty"`
}

// Approved builds a successful outcome.
func Approved(orderID string) ChargeOutcome {
	return ChargeOutcome{OrderID: orderID, Decision: ChargeSucceeded}
}

// Declined builds a declined outcome.
func Declined(orderID, reason string) ChargeOutcome {
	return ChargeOutcome{OrderID: orderID, Decision: ChargeDeclined, Reason: reason}
}

// Validate rejects outcomes with an unknown decision.
func (o ChargeOutcome) Validate() error {
	if o.Decision != ChargeSucceeded && o.Decision != ChargeDeclined {
		return errs.NewValueIsInvalidErrorWithCause("charge decision", fmt.Errorf("%q is not a charge decision", o.Decision))
	}
	if o.OrderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	return nil
}

// OrderStatus maps the decision to the status the updater records.
func (o ChargeOutcome) OrderStatus() order.Status {
	if o.Decision == ChargeSucceeded {
		return order.Paid
	}
	return order.Failed
}
