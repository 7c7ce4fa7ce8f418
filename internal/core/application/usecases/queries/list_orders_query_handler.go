package queries

import (
	"context"
	"fmt"

	"orders/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads a tenant's order history straight from the order store.
// It never consults workflow state: what the store holds is what is returned.
type ListOrdersQueryHandler struct {
	db    *gorm.DB
	table string
}

// NewListOrdersQueryHandler creates a handler reading from table.
// table must already satisfy orderrepo.ValidateTableName.
func NewListOrdersQueryHandler(db *gorm.DB, table string) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, table: table}
}

// Handle returns the matching orders ordered by ordered_at, newest first.
// Orders sharing a timestamp are ordered by order id, which is time ordered too.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE tenant_id = ?`, orderColumns, h.table)
	args := []any{query.TenantID().String()}
	if status, ok := query.Status(); ok {
		sql += ` AND status = ?`
		args = append(args, status.String())
	}
	sql += ` ORDER BY ordered_at DESC, order_id DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return ListOrdersResponse{}, errs.NewStorageErrorWithCause("list orders", err)
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return ListOrdersResponse{}, errs.NewStorageErrorWithCause("read order", scanErr)
		}
		views = append(views, newOrderView(o))
	}

	if err = rows.Err(); err != nil {
		return ListOrdersResponse{}, errs.NewStorageErrorWithCause("list orders", err)
	}

	return ListOrdersResponse{Count: len(views), Orders: views}, nil
}
