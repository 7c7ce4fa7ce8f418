// Package payment provides the simulated payment provider used by the charge step.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrGatewayUnavailable = errors.New("payment provider unavailable")

// Config tunes the simulated provider.
// A zero DeclineAbove accepts any amount.
type Config struct {
	DeclineAbove decimal.Decimal
	FailureRate  float64
}

func (c Config) Validate() error {
	if c.DeclineAbove.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("PAYMENT_DECLINE_ABOVE", fmt.Errorf("%s is negative", c.DeclineAbove))
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return errs.NewValueIsOutOfRangeError("PAYMENT_FAILURE_RATE", c.FailureRate, 0, 1)
	}
	return nil
}

// SimulatedGateway decides charges locally.
// It declines orders whose total exceeds the configured limit and fails a
// configurable share of attempts to exercise the retry path.
type SimulatedGateway struct {
	cfg    Config
	roll   func() float64
	logger *slog.Logger
}

func NewSimulatedGateway(cfg Config, logger *slog.Logger) (*SimulatedGateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SimulatedGateway{
		cfg:    cfg,
		roll:   rand.Float64, //nolint:gosec // simulation only
		logger: logger.With("component", "payment-gateway"),
	}, nil
}

// Charge returns a decision for the order or ErrGatewayUnavailable.
func (g *SimulatedGateway) Charge(ctx context.Context, payload fulfillment.Payload) (fulfillment.ChargeOutcome, error) {
	if err := ctx.Err(); err != nil {
		return fulfillment.ChargeOutcome{}, err
	}

	if g.cfg.FailureRate > 0 && g.roll() < g.cfg.FailureRate {
		g.logger.WarnContext(ctx, "simulated provider failure", "order_id", payload.OrderID)
		return fulfillment.ChargeOutcome{}, ErrGatewayUnavailable
	}

	if g.cfg.DeclineAbove.IsPositive() && payload.Total.GreaterThan(g.cfg.DeclineAbove) {
		return fulfillment.Declined(payload.OrderID, "amount "+payload.Total.String()+" exceeds limit "+g.cfg.DeclineAbove.String()), nil
	}

	return fulfillment.Approved(payload.OrderID), nil
}
