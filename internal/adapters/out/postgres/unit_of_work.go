// Package postgres is the PostgreSQL order store: a GORM Unit of Work over the
// order repository plus the database bootstrap run at startup.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db, orderrepo.DefaultTable)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance holds its own transaction; goroutines must not share one.
package postgres

import (
	"context"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	Key       kernel.OrderKey
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one GORM connection pool.
type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	table string
}

// NewGormUnitOfWorkFactory creates a factory whose units of work persist orders in table.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, cfg.OrdersTable)
func NewGormUnitOfWorkFactory(db *gorm.DB, table string) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, table: table}
}

// Create produces a new UnitOfWork with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create returning the concrete type.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		table:             f.table,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates written through it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	table             string
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Calling Begin on an open unit of work does not nest transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is open, which is
// what a deferred Rollback sees after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns a repository bound to the open transaction, or to
// the connection pool when no transaction is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow.table, uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
func (uow *GormUnitOfWork) TrackAggregate(key kernel.OrderKey, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		Key:       key,
		Aggregate: aggregate,
	})
}

// TrackedKeys returns the keys of the aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedKeys() []kernel.OrderKey {
	keys := make([]kernel.OrderKey, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		keys = append(keys, t.Key)
	}
	return keys
}
