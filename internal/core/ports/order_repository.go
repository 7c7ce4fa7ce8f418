// Package ports defines the contracts between the order core and its infrastructure:
// the order store, the workflow engine, the payment provider, the notification
// channel and the identity provider.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every operation addresses a record by its composite key (tenant + order id).
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and its key must not exist yet.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its composite key.
	// Returns errs.ErrObjectNotFound when no record matches the key.
	Get(ctx context.Context, key kernel.OrderKey) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, key kernel.OrderKey) (*order.Order, error)

	// UpdateStatus writes only the status column of the matching record.
	// Returns errs.ErrObjectNotFound when no record matches the key.
	UpdateStatus(ctx context.Context, key kernel.OrderKey, status order.Status) error
}
