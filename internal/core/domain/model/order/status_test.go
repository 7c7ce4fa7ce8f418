package order_test

import (
	"fmt"
	"testing"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should accept every enumerated value", func(t *testing.T) {
		for _, value := range []string{"PENDING_PAYMENT", "PROCESSING", "PAID", "FAILED", "NOTIFIED"} {
			s, err := order.ParseStatus(value)

			require.NoError(t, err)
			assert.Equal(t, value, s.String())
		}
	})

	t.Run("should reject unknown and empty values", func(t *testing.T) {
		for _, value := range []string{"", "paid", "SHIPPED", "SUCCESS"} {
			_, err := order.ParseStatus(value)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, value)
		}
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{order.PendingPayment, order.Processing, true},
		{order.PendingPayment, order.Paid, true},
		{order.PendingPayment, order.Failed, true},
		{order.Processing, order.Paid, true},
		{order.Processing, order.Failed, true},
		{order.Paid, order.Notified, true},
		{order.Failed, order.Notified, true},

		{order.Paid, order.Paid, true},
		{order.Processing, order.Processing, true},

		{order.Processing, order.PendingPayment, false},
		{order.Paid, order.Processing, false},
		{order.Paid, order.Failed, false},
		{order.Failed, order.Paid, false},
		{order.Notified, order.Paid, false},
		{order.PendingPayment, order.Notified, false},
		{order.Processing, order.Notified, false},
		{order.Status("BOGUS"), order.Paid, false},
		{order.Paid, order.Status(""), false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s to %s", tc.from, tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should return the new status", func(t *testing.T) {
		next, err := order.Processing.TransitionTo(order.Paid)

		require.NoError(t, err)
		assert.Equal(t, order.Paid, next)
	})

	t.Run("should refuse a regression", func(t *testing.T) {
		_, err := order.Paid.TransitionTo(order.PendingPayment)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "PAID cannot move to PENDING_PAYMENT")
	})
}

func TestStatus_IsSettled(t *testing.T) {
	assert.False(t, order.PendingPayment.IsSettled())
	assert.False(t, order.Processing.IsSettled())
	assert.True(t, order.Paid.IsSettled())
	assert.True(t, order.Failed.IsSettled())
	assert.True(t, order.Notified.IsSettled())
}
