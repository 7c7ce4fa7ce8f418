package queries

import (
	"database/sql"
	"time"

	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderColumns = `
			tenant_id,
			order_id,
			email,
			status,
			cut_type,
			weight,
			price_per_unit,
			quantity,
			delivery_charge,
			subtotal,
			total,
			ordered_at,
			delivery_address,
			postal_code,
			delivery_instructions`

// scanOrder reads one row selected with orderColumns and rebuilds the
// aggregate, so rows breaking an order invariant surface as errors.
func scanOrder(rows *sql.Rows) (*order.Order, error) {
	var (
		s         order.Snapshot
		orderID   uuid.UUID
		weight    decimal.Decimal
		price     decimal.Decimal
		delivery  decimal.Decimal
		subtotal  decimal.Decimal
		total     decimal.Decimal
		orderedAt time.Time
	)

	err := rows.Scan(
		&s.TenantID,
		&orderID,
		&s.Email,
		&s.Status,
		&s.CutType,
		&weight,
		&price,
		&s.Quantity,
		&delivery,
		&subtotal,
		&total,
		&orderedAt,
		&s.DeliveryAddress,
		&s.PostalCode,
		&s.DeliveryInstructions,
	)
	if err != nil {
		return nil, err
	}

	s.OrderID = orderID.String()
	s.Weight = weight
	s.PricePerUnit = price
	s.DeliveryCharge = delivery
	s.Subtotal = subtotal
	s.Total = total
	s.OrderedAt = orderedAt
	return order.Restore(s)
}
