package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/tracing"
)

// StatusUpdater is the single writer of an order's status.
type StatusUpdater interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (fulfillment.StatusUpdate, error)
}

// Steps are the units of work of one execution. Each step is safe to run again
// with the same input.
type Steps struct {
	payments  ports.PaymentGateway
	updater   StatusUpdater
	publisher ports.NotificationPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewSteps(
	payments ports.PaymentGateway,
	updater StatusUpdater,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) (*Steps, error) {
	if payments == nil {
		return nil, errs.NewValueIsRequiredError("payments")
	}
	if updater == nil {
		return nil, errs.NewValueIsRequiredError("updater")
	}
	if publisher == nil {
		return nil, errs.NewValueIsRequiredError("publisher")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Steps{
		payments:  payments,
		updater:   updater,
		publisher: publisher,
		logger:    logger.With("component", "workflow-steps"),
		now:       time.Now,
	}, nil
}

// Charge asks the payment gateway for a decision.
// Any failure to obtain a valid decision is an execution failure.
func (s *Steps) Charge(ctx context.Context, payload fulfillment.Payload) (fulfillment.ChargeOutcome, error) {
	ctx, span := tracing.Start(ctx, "workflow.Charge", payloadKey(payload))
	defer span.End()

	outcome, err := s.payments.Charge(ctx, payload)
	if err != nil {
		err = asExecutionFailure("charge order "+payloadKey(payload), err)
		tracing.Fail(span, err)
		return fulfillment.ChargeOutcome{}, err
	}

	if err = outcome.Validate(); err == nil && outcome.OrderID != payload.OrderID {
		err = fmt.Errorf("decision for order %q returned for order %q", outcome.OrderID, payload.OrderID)
	}
	if err != nil {
		err = errs.NewExecutionFailureErrorWithCause("charge order "+payloadKey(payload), err)
		tracing.Fail(span, err)
		return fulfillment.ChargeOutcome{}, err
	}

	s.logger.InfoContext(ctx, "charge decided",
		"tenant_id", payload.TenantID,
		"order_id", payload.OrderID,
		"decision", outcome.Decision,
		"reason", outcome.Reason,
	)
	return outcome, nil
}

// MarkProcessing records that fulfillment has started.
func (s *Steps) MarkProcessing(ctx context.Context, payload fulfillment.Payload) (fulfillment.StatusUpdate, error) {
	return s.updateStatus(ctx, "workflow.MarkProcessing", payload, order.Processing)
}

// UpdateStatus records the business result of the charge.
func (s *Steps) UpdateStatus(
	ctx context.Context,
	payload fulfillment.Payload,
	outcome fulfillment.ChargeOutcome,
) (fulfillment.StatusUpdate, error) {
	return s.updateStatus(ctx, "workflow.UpdateStatus", payload, outcome.OrderStatus())
}

// Notify publishes the recorded status to subscribers.
func (s *Steps) Notify(
	ctx context.Context,
	payload fulfillment.Payload,
	update fulfillment.StatusUpdate,
) (fulfillment.Notification, error) {
	ctx, span := tracing.Start(ctx, "workflow.Notify", payloadKey(payload))
	defer span.End()

	notification := fulfillment.Notification{
		TenantID:    update.TenantID,
		OrderID:     update.OrderID,
		Email:       payload.Email,
		Status:      update.Status,
		Total:       payload.Total.String(),
		PublishedAt: s.now().UTC(),
	}

	if err := s.publisher.Publish(ctx, notification); err != nil {
		err = asExecutionFailure("publish notification for order "+payloadKey(payload), err)
		tracing.Fail(span, err)
		return fulfillment.Notification{}, err
	}

	return notification, nil
}

func (s *Steps) updateStatus(
	ctx context.Context,
	operation string,
	payload fulfillment.Payload,
	status order.Status,
) (fulfillment.StatusUpdate, error) {
	ctx, span := tracing.Start(ctx, operation, payloadKey(payload))
	defer span.End()

	key, err := payload.Key()
	if err != nil {
		tracing.Fail(span, err)
		return fulfillment.StatusUpdate{}, err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(key, status)
	if err != nil {
		tracing.Fail(span, err)
		return fulfillment.StatusUpdate{}, err
	}

	update, err := s.updater.Handle(ctx, cmd)
	if err != nil {
		tracing.Fail(span, err)
		return fulfillment.StatusUpdate{}, err
	}

	return update, nil
}

func payloadKey(p fulfillment.Payload) string {
	return p.TenantID + "/" + p.OrderID
}

func asExecutionFailure(step string, err error) error {
	if errors.Is(err, errs.ErrExecutionFailure) {
		return err
	}
	return errs.NewExecutionFailureErrorWithCause(step, err)
}
