package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testPrincipal(t *testing.T) kernel.Principal {
	t.Helper()
	p, err := kernel.NewPrincipal(kernel.MustNewTenantID("tenant-1"), "buyer@example.com")
	require.NoError(t, err)
	return p
}

func validSubmitCommand(t *testing.T) commands.SubmitOrderCommand {
	t.Helper()
	cmd, err := commands.NewSubmitOrderCommand(testPrincipal(t), "CURRY_CUT",
		dec("1.5"), dec("299.99"), 2, dec("0"),
		order.Delivery{Address: "12 Harbour Rd", PostalCode: "339914", Instructions: "ring twice"})
	require.NoError(t, err)
	return cmd
}

func TestNewSubmitOrderCommand_ValidInput(t *testing.T) {
	cmd := validSubmitCommand(t)

	assert.Equal(t, order.CutCurry, cmd.CutType())
	assert.True(t, cmd.Pricing().Subtotal().Equal(dec("899.97")))
	assert.True(t, cmd.Pricing().Total().Equal(dec("899.97")))
	assert.Equal(t, "339914", cmd.Delivery().PostalCode)
	require.NoError(t, cmd.Validate())
}

func TestNewSubmitOrderCommand_CutTypeOutsideCatalog(t *testing.T) {
	_, err := commands.NewSubmitOrderCommand(testPrincipal(t), "DRAGON_WING",
		dec("1"), dec("10"), 1, dec("0"), order.Delivery{})

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewSubmitOrderCommand_ReportsAllFieldErrors(t *testing.T) {
	_, err := commands.NewSubmitOrderCommand(testPrincipal(t), "",
		dec("-1"), dec("10"), 0, dec("0"), order.Delivery{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.True(t, errs.IsValidation(err))
}

func TestNewSubmitOrderCommand_MissingPrincipal(t *testing.T) {
	_, err := commands.NewSubmitOrderCommand(kernel.Principal{}, "WHOLE",
		dec("1"), dec("10"), 1, dec("0"), order.Delivery{})

	require.ErrorIs(t, err, errs.ErrAuthorization)
}

func TestSubmitOrderCommand_NotConstructed(t *testing.T) {
	require.ErrorIs(t, commands.SubmitOrderCommand{}.Validate(), commands.ErrSubmitOrderCommandIsNotConstructed)
}
