// Package temporal runs fulfillment executions on a Temporal cluster.
//
// The workflow calls the same steps as the in-process machine, as activities:
//
//	MarkProcessing (1 attempt) -> Charge (retry policy) -> UpdateStatus (1 attempt) -> Notify (1 attempt)
//
// The workflow id is derived from the order key, so a second start for the same
// order attaches to the existing execution.
package temporal

import (
	"time"

	"orders/internal/core/domain/model/fulfillment"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	WorkflowName = "OrderFulfillment"
	stepTimeout  = 30 * time.Second
)

// Result is what a completed execution returns.
type Result struct {
	Outcome      fulfillment.ChargeOutcome `json:"outcome"`
	Update       fulfillment.StatusUpdate  `json:"update"`
	Notification fulfillment.Notification  `json:"notification"`
}

type UpdateStatusInput struct {
	Payload fulfillment.Payload       `json:"payload"`
	Outcome fulfillment.ChargeOutcome `json:"outcome"`
}

type NotifyInput struct {
	Payload fulfillment.Payload      `json:"payload"`
	Update  fulfillment.StatusUpdate `json:"update"`
}

// Workflow is the Temporal definition of an order execution.
type Workflow struct {
	chargePolicy fulfillment.RetryPolicy
}

func NewWorkflow(chargePolicy fulfillment.RetryPolicy) (*Workflow, error) {
	if err := chargePolicy.Validate(); err != nil {
		return nil, err
	}
	return &Workflow{chargePolicy: chargePolicy}, nil
}

func (w *Workflow) Run(ctx workflow.Context, payload fulfillment.Payload) (Result, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("fulfillment started", "tenant_id", payload.TenantID, "order_id", payload.OrderID)

	var a *Activities
	once := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: stepTimeout,
		RetryPolicy:         retryPolicy(fulfillment.NoRetry()),
	})
	charge := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: stepTimeout,
		RetryPolicy:         retryPolicy(w.chargePolicy),
	})

	var result Result
	if err := workflow.ExecuteActivity(once, a.MarkProcessing, payload).Get(ctx, nil); err != nil {
		logger.Error("mark processing failed", "error", err)
		return Result{}, err
	}

	if err := workflow.ExecuteActivity(charge, a.Charge, payload).Get(ctx, &result.Outcome); err != nil {
		logger.Error("charge failed", "error", err)
		return Result{}, err
	}

	update := UpdateStatusInput{Payload: payload, Outcome: result.Outcome}
	if err := workflow.ExecuteActivity(once, a.UpdateStatus, update).Get(ctx, &result.Update); err != nil {
		logger.Error("status update failed", "error", err)
		return Result{}, err
	}

	notify := NotifyInput{Payload: payload, Update: result.Update}
	if err := workflow.ExecuteActivity(once, a.Notify, notify).Get(ctx, &result.Notification); err != nil {
		logger.Error("notify failed", "error", err)
		return Result{}, err
	}

	logger.Info("fulfillment completed", "order_id", payload.OrderID, "status", result.Update.Status)
	return result, nil
}

func retryPolicy(p fulfillment.RetryPolicy) *temporal.RetryPolicy {
	rp := &temporal.RetryPolicy{
		MaximumAttempts:    int32(p.Attempts()), //nolint:gosec // small configured value
		BackoffCoefficient: 1.0,
	}
	if p.Interval > 0 {
		rp.InitialInterval = p.Interval
		rp.MaximumInterval = p.Interval
	}
	return rp
}
