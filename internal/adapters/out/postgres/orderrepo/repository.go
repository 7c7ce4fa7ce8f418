package orderrepo

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	table   string
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(key kernel.OrderKey, aggregate any)
}

// NewGormOrderRepository creates a repository bound to db, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB, table string, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		table:   table,
		tracker: tracker,
	}
}

// Add inserts a new order. A second insert under the same key fails.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Table(r.table).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.Key(), aggregate)
	return nil
}

// Get retrieves an order by its composite key.
func (r *GormOrderRepository) Get(ctx context.Context, key kernel.OrderKey) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), key)
}

// GetForUpdate retrieves an order and locks its row until the transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, key kernel.OrderKey) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), key)
}

// UpdateStatus writes the status column of one record and nothing else.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, key kernel.OrderKey, status order.Status) error {
	if err := errors.Join(key.Validate(), status.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Table(r.table).
		Where("tenant_id = ? AND order_id = ?", key.TenantID().String(), key.OrderID().Bytes()).
		Update("status", status.String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", key.String())
	}

	return nil
}

func (r *GormOrderRepository) get(db *gorm.DB, key kernel.OrderKey) (*order.Order, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := db.Table(r.table).
		Where("tenant_id = ? AND order_id = ?", key.TenantID().String(), key.OrderID().Bytes()).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", key.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}
