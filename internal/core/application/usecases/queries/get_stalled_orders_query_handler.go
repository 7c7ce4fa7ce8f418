package queries

import (
	"context"
	"fmt"
	"time"

	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetStalledOrdersQueryHandler returns workflow payloads for stalled orders,
// oldest first, across all tenants.
type GetStalledOrdersQueryHandler struct {
	db    *gorm.DB
	table string
	now   func() time.Time
}

func NewGetStalledOrdersQueryHandler(db *gorm.DB, table string) GetStalledOrdersQueryHandler {
	return GetStalledOrdersQueryHandler{db: db, table: table, now: time.Now}
}

func (h GetStalledOrdersQueryHandler) Handle(ctx context.Context, query GetStalledOrdersQuery) ([]fulfillment.Payload, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := h.now().Add(-query.OlderThan()).UTC()
	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE status = ? AND ordered_at < ?`, orderColumns, h.table)
	args := []any{order.PendingPayment.String(), cutoff}
	if query.cursor != nil {
		sql += ` AND (ordered_at, order_id) > (?, ?)`
		args = append(args, query.cursor.orderedAt, query.cursor.orderID.Bytes())
	}
	sql += ` ORDER BY ordered_at, order_id LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, errs.NewStorageErrorWithCause("list stalled orders", err)
	}
	defer rows.Close()

	payloads := make([]fulfillment.Payload, 0)
	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, errs.NewStorageErrorWithCause("read stalled order", scanErr)
		}
		payloads = append(payloads, fulfillment.NewPayload(o))
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageErrorWithCause("list stalled orders", err)
	}

	return payloads, nil
}
