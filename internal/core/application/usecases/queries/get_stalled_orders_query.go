package queries

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrGetStalledOrdersQueryIsNotConstructed = errors.New(
	"GetStalledOrdersQuery must be created via NewGetStalledOrdersQuery constructor",
)

// GetStalledOrdersQuery finds orders still waiting in PENDING_PAYMENT long after
// they were accepted, which happens when starting their workflow failed.
type GetStalledOrdersQuery struct {
	olderThan time.Duration
	limit     int
	cursor    *stalledCursor

	guard guard.ConstructorGuard
}

// NewGetStalledOrdersQuery selects at most limit orders accepted more than olderThan ago.
func NewGetStalledOrdersQuery(olderThan time.Duration, limit int) (GetStalledOrdersQuery, error) {
	if olderThan <= 0 {
		return GetStalledOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("olderThan", fmt.Errorf("%s is not positive", olderThan))
	}
	if limit <= 0 {
		return GetStalledOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	return GetStalledOrdersQuery{
		olderThan: olderThan,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStalledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalledOrdersQueryIsNotConstructed)
}

func (q GetStalledOrdersQuery) OlderThan() time.Duration {
	return q.olderThan
}

func (q GetStalledOrdersQuery) Limit() int {
	return q.limit
}

type stalledCursor struct {
	orderedAt time.Time
	orderID   kernel.UUID
}

// After returns the next page of the query: orders sorting strictly after the
// given (orderedAt, orderID) position, which is the last order of the previous page.
func (q GetStalledOrdersQuery) After(orderedAt time.Time, orderID kernel.UUID) (GetStalledOrdersQuery, error) {
	if orderedAt.IsZero() {
		return GetStalledOrdersQuery{}, errs.NewValueIsRequiredError("orderedAt")
	}
	if err := orderID.Validate(); err != nil {
		return GetStalledOrdersQuery{}, err
	}
	q.cursor = &stalledCursor{orderedAt: orderedAt.UTC(), orderID: orderID}
	return q, nil
}
