// Package orderrepo persists order aggregates in PostgreSQL through GORM.
// A record is addressed by its composite primary key (tenant_id, order_id);
// no operation in this package accepts an order id alone.
package orderrepo

import (
	"fmt"
	"regexp"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultTable is the store table used when no identifier is configured.
const DefaultTable = "orders"

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// OrderDTO is the row layout of the order store.
// Money columns are numeric so decimal values round-trip exactly.
type OrderDTO struct {
	TenantID             string          `gorm:"primaryKey;size:128"`
	OrderID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Email                string          `gorm:"size:320;not null"`
	Status               string          `gorm:"size:32;not null"`
	CutType              string          `gorm:"size:32;not null"`
	Weight               decimal.Decimal `gorm:"type:numeric;not null"`
	PricePerUnit         decimal.Decimal `gorm:"type:numeric;not null"`
	Quantity             int             `gorm:"not null"`
	DeliveryCharge       decimal.Decimal `gorm:"type:numeric;not null"`
	Subtotal             decimal.Decimal `gorm:"type:numeric;not null"`
	Total                decimal.Decimal `gorm:"type:numeric;not null"`
	OrderedAt            time.Time       `gorm:"not null"`
	DeliveryAddress      string          `gorm:"size:512"`
	PostalCode           string          `gorm:"size:16"`
	DeliveryInstructions string          `gorm:"size:1024"`
}

// TableName is the GORM default; repositories override it with their configured table.
func (OrderDTO) TableName() string {
	return DefaultTable
}

// ValidateTableName accepts plain lower-case SQL identifiers only, since the
// table name is also interpolated into raw read queries.
func ValidateTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return errs.NewValueIsInvalidErrorWithCause("ORDERS_TABLE", fmt.Errorf("%q is not a plain identifier", table))
	}
	return nil
}

// Migrate creates or updates the order table and its listing index.
// Index names carry the table name, so several stores can share a schema.
func Migrate(db *gorm.DB, table string) error {
	if err := ValidateTableName(table); err != nil {
		return err
	}
	if err := db.Table(table).AutoMigrate(&OrderDTO{}); err != nil {
		return err
	}
	return db.Exec(fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS idx_%[1]s_tenant_ordered_at ON %[1]s (tenant_id, ordered_at DESC, order_id DESC)",
		table,
	)).Error
}

func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	s := aggregate.Snapshot()
	orderID, err := uuid.Parse(s.OrderID)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		TenantID:             s.TenantID,
		OrderID:              orderID,
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
	}, nil
}

// ToDomain rebuilds the aggregate from a row, re-checking every invariant.
// Read models share it so a corrupted row never reaches a caller.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	return order.Restore(order.Snapshot{
		TenantID:             dto.TenantID,
		OrderID:              dto.OrderID.String(),
		Email:                dto.Email,
		Status:               dto.Status,
		CutType:              dto.CutType,
		Weight:               dto.Weight,
		PricePerUnit:         dto.PricePerUnit,
		Quantity:             dto.Quantity,
		DeliveryCharge:       dto.DeliveryCharge,
		Subtotal:             dto.Subtotal,
		Total:                dto.Total,
		OrderedAt:            dto.OrderedAt,
		DeliveryAddress:      dto.DeliveryAddress,
		PostalCode:           dto.PostalCode,
		DeliveryInstructions: dto.DeliveryInstructions,
	})
}
