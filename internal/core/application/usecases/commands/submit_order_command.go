package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand is an authenticated customer's request to buy a product.
// Pricing is computed and validated when the command is built, so a constructed
// command always describes an order the store will accept.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(principal, "CURRY_CUT",
//	    decimal.RequireFromString("1.5"), decimal.RequireFromString("299.99"), 2, decimal.Zero,
//	    order.Delivery{Address: "12 Harbour Rd", PostalCode: "339914"})
//	if err != nil {
//	    return fmt.Errorf("invalid submission: %w", err)
//	}
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	cutType   order.CutType
	pricing   order.Pricing
	delivery  order.Delivery

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand validates a submission.
// All field errors are reported together.
func NewSubmitOrderCommand(
	principal kernel.Principal,
	cutType string,
	weight, pricePerUnit decimal.Decimal,
	quantity int,
	deliveryCharge decimal.Decimal,
	delivery order.Delivery,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard:    guard.NewConstructorGuard(),
		delivery: delivery,
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setCutType(cutType),
		cmd.setPricing(weight, pricePerUnit, quantity, deliveryCharge),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c SubmitOrderCommand) CutType() order.CutType {
	return c.cutType
}

func (c SubmitOrderCommand) Pricing() order.Pricing {
	return c.pricing
}

func (c SubmitOrderCommand) Delivery() order.Delivery {
	return c.delivery
}

func (c *SubmitOrderCommand) setPrincipal(principal kernel.Principal) error {
	if err := principal.Validate(); err != nil {
		return errs.NewAuthorizationErrorWithCause("no verified tenant identity", err)
	}

	c.principal = principal
	return nil
}

func (c *SubmitOrderCommand) setCutType(value string) error {
	cutType, err := order.ParseCutType(value)
	if err != nil {
		return err
	}

	c.cutType = cutType
	return nil
}

func (c *SubmitOrderCommand) setPricing(weight, pricePerUnit decimal.Decimal, quantity int, deliveryCharge decimal.Decimal) error {
	pricing, err := order.NewPricing(weight, pricePerUnit, quantity, deliveryCharge)
	if err != nil {
		return err
	}

	c.pricing = pricing
	return nil
}
