package workflow

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/tracing"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/trace"
)

// Execution is the record of one workflow run.
// Outcome, Update and Notification are set once the matching step succeeded.
type Execution struct {
	Key            kernel.OrderKey
	State          fulfillment.State
	ChargeAttempts int
	Outcome        *fulfillment.ChargeOutcome
	Update         *fulfillment.StatusUpdate
	Notification   *fulfillment.Notification
	Err            error
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Machine runs executions in process:
//
//	MarkProcessing -> Charging (retried) -> Updating -> Notifying -> Completed
//
// A step failure that survives its retry policy ends the execution in Failed.
// A declined charge is not a failure.
type Machine struct {
	steps        *Steps
	chargePolicy fulfillment.RetryPolicy
	logger       *slog.Logger
	now          func() time.Time
}

func NewMachine(steps *Steps, chargePolicy fulfillment.RetryPolicy, logger *slog.Logger) (*Machine, error) {
	if steps == nil {
		return nil, errs.NewValueIsRequiredError("steps")
	}
	if err := chargePolicy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Machine{
		steps:        steps,
		chargePolicy: chargePolicy,
		logger:       logger.With("component", "workflow-machine"),
		now:          time.Now,
	}, nil
}

// Run drives one execution to a terminal state and returns its record.
func (m *Machine) Run(ctx context.Context, payload fulfillment.Payload) Execution {
	ctx, span := tracing.Start(ctx, "workflow.Run", payloadKey(payload))
	defer span.End()

	exec := Execution{State: fulfillment.Charging, StartedAt: m.now()}

	key, err := payload.Key()
	if err != nil {
		return m.fail(ctx, exec, err)
	}
	exec.Key = key

	if _, err = m.steps.MarkProcessing(ctx, payload); err != nil {
		return m.fail(ctx, exec, err)
	}

	outcome, err := m.charge(ctx, payload, &exec)
	if err != nil {
		return m.fail(ctx, exec, err)
	}
	exec.Outcome = &outcome
	exec.State = fulfillment.Updating

	update, err := m.steps.UpdateStatus(ctx, payload, outcome)
	if err != nil {
		return m.fail(ctx, exec, err)
	}
	exec.Update = &update
	exec.State = fulfillment.Notifying

	notification, err := m.steps.Notify(ctx, payload, update)
	if err != nil {
		return m.fail(ctx, exec, err)
	}
	exec.Notification = &notification
	exec.State = fulfillment.Completed
	exec.FinishedAt = m.now()

	m.logger.InfoContext(ctx, "execution completed",
		"order_key", key.String(),
		"status", update.Status,
		"charge_attempts", exec.ChargeAttempts,
		"duration", exec.FinishedAt.Sub(exec.StartedAt),
	)
	return exec
}

func (m *Machine) charge(ctx context.Context, payload fulfillment.Payload, exec *Execution) (fulfillment.ChargeOutcome, error) {
	var policy backoff.BackOff = backoff.NewConstantBackOff(m.chargePolicy.Interval)
	policy = backoff.WithMaxRetries(policy, uint64(m.chargePolicy.MaxRetries)) //nolint:gosec // validated >= 0
	policy = backoff.WithContext(policy, ctx)

	var outcome fulfillment.ChargeOutcome
	operation := func() error {
		exec.ChargeAttempts++
		result, err := m.steps.Charge(ctx, payload)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		outcome = result
		return nil
	}

	notify := func(err error, wait time.Duration) {
		m.logger.WarnContext(ctx, "charge attempt failed",
			"order_key", payloadKey(payload),
			"attempt", exec.ChargeAttempts,
			"retry_in", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return fulfillment.ChargeOutcome{}, err
	}
	return outcome, nil
}

func (m *Machine) fail(ctx context.Context, exec Execution, err error) Execution {
	tracing.Fail(trace.SpanFromContext(ctx), err)
	m.logger.ErrorContext(ctx, "execution failed",
		"order_key", exec.Key.String(),
		"state", exec.State,
		"charge_attempts", exec.ChargeAttempts,
		"error", err,
	)

	exec.State = fulfillment.Failed
	exec.Err = err
	exec.FinishedAt = m.now()
	return exec
}
