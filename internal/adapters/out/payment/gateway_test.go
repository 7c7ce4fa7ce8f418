package payment_test

import (
	"context"
	"testing"

	"orders/internal/adapters/out/payment"
	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadWithTotal(total string) fulfillment.Payload {
	return fulfillment.Payload{TenantID: "tenant-1", OrderID: "o-1", Total: decimal.RequireFromString(total)}
}

func TestSimulatedGateway_Charge(t *testing.T) {
	tests := []struct {
		name     string
		cfg      payment.Config
		roll     float64
		total    string
		decision fulfillment.ChargeDecision
		failure  bool
	}{
		{name: "no limit approves", total: "100000", decision: fulfillment.ChargeSucceeded},
		{name: "at the limit approves", cfg: payment.Config{DeclineAbove: decimal.RequireFromString("500")}, total: "500.00", decision: fulfillment.ChargeSucceeded},
		{name: "above the limit declines", cfg: payment.Config{DeclineAbove: decimal.RequireFromString("500")}, total: "500.01", decision: fulfillment.ChargeDeclined},
		{name: "roll under the failure rate fails", cfg: payment.Config{FailureRate: 0.5}, roll: 0.2, total: "10", failure: true},
		{name: "roll over the failure rate approves", cfg: payment.Config{FailureRate: 0.5}, roll: 0.7, total: "10", decision: fulfillment.ChargeSucceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := payment.NewSimulatedGateway(tt.cfg, nil)
			require.NoError(t, err)
			g.WithRoll(func() float64 { return tt.roll })

			outcome, err := g.Charge(t.Context(), payloadWithTotal(tt.total))

			if tt.failure {
				require.ErrorIs(t, err, payment.ErrGatewayUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.decision, outcome.Decision)
			assert.Equal(t, "o-1", outcome.OrderID)
			require.NoError(t, outcome.Validate())
		})
	}
}

func TestSimulatedGateway_CanceledContext(t *testing.T) {
	g, err := payment.NewSimulatedGateway(payment.Config{}, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = g.Charge(ctx, payloadWithTotal("1"))

	require.ErrorIs(t, err, context.Canceled)
}

func TestConfig_Validate(t *testing.T) {
	require.ErrorIs(t, payment.Config{FailureRate: 1.5}.Validate(), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, payment.Config{DeclineAbove: decimal.NewFromInt(-1)}.Validate(), errs.ErrValueIsInvalid)
	require.NoError(t, payment.Config{FailureRate: 1}.Validate())
}
