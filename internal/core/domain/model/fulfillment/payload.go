package fulfillment

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Payload is the full order handed to a workflow execution at start.
// It is serialized by the workflow engine, so it only carries plain fields.
type Payload struct {
	TenantID             string          `json:"tenantId"`
	OrderID              string          `json:"orderId"`
	Email                string          `json:"email"`
	Status               string          `json:"status"`
	CutType              string          `json:"cutType"`
	Weight               decimal.Decimal `json:"weight"`
	PricePerUnit         decimal.Decimal `json:"pricePerUnit"`
	Quantity             int             `json:"quantity"`
	DeliveryCharge       decimal.Decimal `json:"deliveryCharge"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	Total                decimal.Decimal `json:"total"`
	OrderedAt            time.Time       `json:"orderedAt"`
	DeliveryAddress      string          `json:"deliveryAddress"`
	PostalCode           string          `json:"postalCode"`
	DeliveryInstructions string          `json:"deliveryInstructions"`
}

// NewPayload snapshots an accepted order.
func NewPayload(o *order.Order) Payload {
	s := o.Snapshot()
	return Payload{
		TenantID:             s.TenantID,
		OrderID:              s.OrderID,
		Email:                s.Email,
		Status:               s.Status,
		CutType:              s.CutType,
		Weight:               s.Weight,
		PricePerUnit:         s.PricePerUnit,
		Quantity:             s.Quantity,
		DeliveryCharge:       s.DeliveryCharge,
		Subtotal:             s.Subtotal,
		Total:                s.Total,
		OrderedAt:            s.OrderedAt,
		DeliveryAddress:      s.DeliveryAddress,
		PostalCode:           s.PostalCode,
		DeliveryInstructions: s.DeliveryInstructions,
	}
}

// Key returns the composite store key of the order.
func (p Payload) Key() (kernel.OrderKey, error) {
	return kernel.OrderKeyFromStrings(p.TenantID, p.OrderID)
}

// StatusUpdate is the input and the result of the status updater step.
// It always carries the full composite key.
type StatusUpdate struct {
	TenantID string `json:"tenantId"`
	OrderID  string `json:"orderId"`
	Status   string `json:"status"`
}

// Notification is what the publisher emits once the order reached its final status.
type Notification struct {
	TenantID    string    `json:"tenantId"`
	OrderID     string    `json:"orderId"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	Total       string    `json:"total"`
	PublishedAt time.Time `json:"publishedAt"`
}

// DedupKey identifies a notification for subscribers that must tolerate redelivery.
func (n Notification) DedupKey() string {
	return n.TenantID + "/" + n.OrderID + "/" + n.Status
}
