package order

import (
	"errors"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or Restore.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Length limits of the delivery metadata, in bytes.
const (
	MaxAddressLength      = 512
	MaxPostalCodeLength   = 16
	MaxInstructionsLength = 1024
)

// Delivery is the free-form delivery metadata supplied with a submission.
type Delivery struct {
	Address      string
	PostalCode   string
	Instructions string
}

// Order is the aggregate root of the service.
//
// Order follows these invariants:
//   - It is addressed by a valid composite key (tenant + order id)
//   - Its cut type is a catalog member
//   - Its pricing satisfies total = weight × pricePerUnit × quantity + deliveryCharge
//   - Its status only moves forward (see Status)
//
// Everything but the status is fixed at creation.
type Order struct {
	key       kernel.OrderKey
	email     string
	cutType   CutType
	pricing   Pricing
	delivery  Delivery
	status    Status
	orderedAt time.Time

	isConstructed bool
}

// NewOrder creates an accepted order in PENDING_PAYMENT.
//
// Example:
//
//	key, _ := kernel.NewOrderKey(principal.TenantID(), kernel.NewUUID())
//	pricing, _ := order.NewPricing(decimal.RequireFromString("1.5"), decimal.RequireFromString("299.99"), 2, decimal.Zero)
//	o, err := order.NewOrder(key, principal.Email(), order.CutCurry, pricing, delivery, time.Now())
func NewOrder(
	key kernel.OrderKey,
	email string,
	cutType CutType,
	pricing Pricing,
	delivery Delivery,
	orderedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        PendingPayment,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setKey(key),
		o.setEmail(email),
		o.setCutType(cutType),
		o.setPricing(pricing),
		o.setDelivery(delivery),
		o.setOrderedAt(orderedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the flat, exported view of an order used by persistence adapters
// and by the fulfillment payload.
type Snapshot struct {
	TenantID             string
	OrderID              string
	Email                string
	Status               string
	CutType              string
	Weight               decimal.Decimal
	PricePerUnit         decimal.Decimal
	Quantity             int
	DeliveryCharge       decimal.Decimal
	Subtotal             decimal.Decimal
	Total                decimal.Decimal
	OrderedAt            time.Time
	DeliveryAddress      string
	PostalCode           string
	DeliveryInstructions string
}

// Restore rebuilds an order from a snapshot, re-checking every invariant.
func Restore(s Snapshot) (*Order, error) {
	key, err := kernel.OrderKeyFromStrings(s.TenantID, s.OrderID)
	if err != nil {
		return nil, err
	}

	status, statusErr := ParseStatus(s.Status)
	cutType, cutErr := ParseCutType(s.CutType)
	pricing, pricingErr := RestorePricing(s.Weight, s.PricePerUnit, s.Quantity, s.DeliveryCharge, s.Subtotal, s.Total)
	if err = errors.Join(statusErr, cutErr, pricingErr); err != nil {
		return nil, err
	}

	o, err := NewOrder(key, s.Email, cutType, pricing, Delivery{
		Address:      s.DeliveryAddress,
		PostalCode:   s.PostalCode,
		Instructions: s.DeliveryInstructions,
	}, s.OrderedAt)
	if err != nil {
		return nil, err
	}
	o.status = status
	return o, nil
}

// Validate ensures the order was built by NewOrder or Restore.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) Key() kernel.OrderKey {
	return o.key
}

func (o *Order) Email() string {
	return o.email
}

func (o *Order) CutType() CutType {
	return o.cutType
}

func (o *Order) Pricing() Pricing {
	return o.pricing
}

func (o *Order) Delivery() Delivery {
	return o.delivery
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) OrderedAt() time.Time {
	return o.orderedAt
}

// ChangeStatus moves the order forward in its lifecycle.
// Returns a validation error if next would regress the order.
func (o *Order) ChangeStatus(next Status) error {
	status, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

// Snapshot flattens the order.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		TenantID:             o.key.TenantID().String(),
		OrderID:              o.key.OrderID().String(),
		Email:                o.email,
		Status:               o.status.String(),
		CutType:              o.cutType.String(),
		Weight:               o.pricing.Weight(),
		PricePerUnit:         o.pricing.PricePerUnit(),
		Quantity:             o.pricing.Quantity(),
		DeliveryCharge:       o.pricing.DeliveryCharge(),
		Subtotal:             o.pricing.Subtotal(),
		Total:                o.pricing.Total(),
		OrderedAt:            o.orderedAt,
		DeliveryAddress:      o.delivery.Address,
		PostalCode:           o.delivery.PostalCode,
		DeliveryInstructions: o.delivery.Instructions,
	}
}

func (o *Order) setKey(key kernel.OrderKey) error {
	if err := key.Validate(); err != nil {
		return err
	}
	o.key = key
	return nil
}

func (o *Order) setEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errs.NewValueIsRequiredError("email")
	}
	o.email = email
	return nil
}

func (o *Order) setCutType(cutType CutType) error {
	if err := cutType.Validate(); err != nil {
		return err
	}
	o.cutType = cutType
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if pricing.quantity <= 0 {
		return errs.NewValueIsRequiredError("pricing")
	}
	o.pricing = pricing
	return nil
}

func (o *Order) setDelivery(delivery Delivery) error {
	if err := errors.Join(
		maxLength("deliveryAddress", delivery.Address, MaxAddressLength),
		maxLength("postalCode", delivery.PostalCode, MaxPostalCodeLength),
		maxLength("deliveryInstructions", delivery.Instructions, MaxInstructionsLength),
	); err != nil {
		return err
	}
	o.delivery = delivery
	return nil
}

func (o *Order) setOrderedAt(orderedAt time.Time) error {
	if orderedAt.IsZero() {
		return errs.NewValueIsRequiredError("orderedAt")
	}
	o.orderedAt = orderedAt.UTC()
	return nil
}

func maxLength(name, value string, limit int) error {
	if len(value) > limit {
		return errs.NewValueIsOutOfRangeError(name+" length", len(value), 0, limit)
	}
	return nil
}
