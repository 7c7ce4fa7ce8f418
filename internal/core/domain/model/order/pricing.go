package order

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Pricing holds the money fields of an order. Subtotal and Total are derived in
// NewPricing and never recomputed: once an order is accepted they are part of the
// immutable record, even if the catalog price changes later.
type Pricing struct {
	weight         decimal.Decimal
	pricePerUnit   decimal.Decimal
	quantity       int
	deliveryCharge decimal.Decimal
	subtotal       decimal.Decimal
	total          decimal.Decimal
}

// NewPricing validates the inputs and derives
//
//	subtotal = weight × pricePerUnit × quantity
//	total    = subtotal + deliveryCharge
//
// with exact decimal arithmetic.
func NewPricing(weight, pricePerUnit decimal.Decimal, quantity int, deliveryCharge decimal.Decimal) (Pricing, error) {
	if err := errors.Join(
		nonNegative("weight", weight),
		nonNegative("pricePerUnit", pricePerUnit),
		positive("quantity", quantity),
		nonNegative("deliveryCharge", deliveryCharge),
	); err != nil {
		return Pricing{}, err
	}

	subtotal := weight.Mul(pricePerUnit).Mul(decimal.NewFromInt(int64(quantity)))
	return Pricing{
		weight:         weight,
		pricePerUnit:   pricePerUnit,
		quantity:       quantity,
		deliveryCharge: deliveryCharge,
		subtotal:       subtotal,
		total:          subtotal.Add(deliveryCharge),
	}, nil
}

// RestorePricing rebuilds persisted pricing without recomputing the derived fields,
// but refuses a record whose stored total disagrees with its parts.
func RestorePricing(
	weight, pricePerUnit decimal.Decimal,
	quantity int,
	deliveryCharge, subtotal, total decimal.Decimal,
) (Pricing, error) {
	p, err := NewPricing(weight, pricePerUnit, quantity, deliveryCharge)
	if err != nil {
		return Pricing{}, err
	}
	if !p.subtotal.Equal(subtotal) || !p.total.Equal(total) {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("stored subtotal %s / total %s disagree with computed %s / %s", subtotal, total, p.subtotal, p.total),
		)
	}
	p.subtotal, p.total = subtotal, total
	return p, nil
}

func (p Pricing) Weight() decimal.Decimal {
	return p.weight
}

func (p Pricing) PricePerUnit() decimal.Decimal {
	return p.pricePerUnit
}

func (p Pricing) Quantity() int {
	return p.quantity
}

func (p Pricing) DeliveryCharge() decimal.Decimal {
	return p.deliveryCharge
}

func (p Pricing) Subtotal() decimal.Decimal {
	return p.subtotal
}

func (p Pricing) Total() decimal.Decimal {
	return p.total
}

func nonNegative(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v))
	}
	return nil
}

func positive(name string, v int) error {
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is not greater than 0", v))
	}
	return nil
}
