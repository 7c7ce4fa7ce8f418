package order_test

import (
	"testing"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCutType(t *testing.T) {
	t.Run("should accept every catalog member", func(t *testing.T) {
		for _, c := range order.Catalog() {
			parsed, err := order.ParseCutType(c.String())

			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
	})

	t.Run("should reject values outside the catalog", func(t *testing.T) {
		for _, value := range []string{"DRAGON_WING", "curry_cut", "WHOLE "} {
			_, err := order.ParseCutType(value)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, value)
		}
	})

	t.Run("should require a value", func(t *testing.T) {
		_, err := order.ParseCutType("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
