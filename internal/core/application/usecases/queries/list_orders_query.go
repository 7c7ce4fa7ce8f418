// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists one tenant's orders, newest first, optionally
// restricted to a single status.
//
// Example:
//
//	query, err := NewListOrdersQuery(principal.TenantID(), c.QueryParam("status"))
//	if err != nil {
//	    return err // ErrAuthorization or a validation error
//	}
//	result, err := handler.Handle(ctx, query)
//	fmt.Printf("%d orders\n", result.Count)
type ListOrdersQuery struct {
	tenantID kernel.TenantID
	status   *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. An empty status means no filter.
// A query without a tenant fails with errs.ErrAuthorization.
func NewListOrdersQuery(tenantID kernel.TenantID, status string) (ListOrdersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewAuthorizationErrorWithCause("no verified tenant identity", err)
	}

	q := ListOrdersQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}

	if status != "" {
		s, err := order.ParseStatus(status)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		q.status = &s
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// Status returns the filter and whether one was given.
func (q ListOrdersQuery) Status() (order.Status, bool) {
	if q.status == nil {
		return "", false
	}
	return *q.status, true
}

// OrderView is the read model of one order as shown in the order history.
type OrderView struct {
	OrderID              kernel.UUID
	Status               order.Status
	CutType              order.CutType
	Weight               decimal.Decimal
	PricePerUnit         decimal.Decimal
	Quantity             int
	DeliveryCharge       decimal.Decimal
	Subtotal             decimal.Decimal
	Total                decimal.Decimal
	OrderedAt            time.Time
	Email                string
	DeliveryAddress      string
	PostalCode           string
	DeliveryInstructions string
}

// ListOrdersResponse pairs the orders with their count.
// Count is always len(Orders): both describe the same filtered set.
type ListOrdersResponse struct {
	Count  int
	Orders []OrderView
}

func newOrderView(o *order.Order) OrderView {
	p := o.Pricing()
	d := o.Delivery()
	return OrderView{
		OrderID:              o.Key().OrderID(),
		Status:               o.Status(),
		CutType:              o.CutType(),
		Weight:               p.Weight(),
		PricePerUnit:         p.PricePerUnit(),
		Quantity:             p.Quantity(),
		DeliveryCharge:       p.DeliveryCharge(),
		Subtotal:             p.Subtotal(),
		Total:                p.Total(),
		OrderedAt:            o.OrderedAt(),
		Email:                o.Email(),
		DeliveryAddress:      d.Address,
		PostalCode:           d.PostalCode,
		DeliveryInstructions: d.Instructions,
	}
}
