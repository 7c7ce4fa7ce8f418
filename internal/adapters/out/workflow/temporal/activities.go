package temporal

import (
	"context"
	"errors"

	orderflow "orders/internal/core/application/workflow"
	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/pkg/errs"

	"go.temporal.io/sdk/temporal"
)

// Activities exposes the fulfillment steps to Temporal workers.
type Activities struct {
	steps *orderflow.Steps
}

func NewActivities(steps *orderflow.Steps) (*Activities, error) {
	if steps == nil {
		return nil, errs.NewValueIsRequiredError("steps")
	}
	return &Activities{steps: steps}, nil
}

func (a *Activities) MarkProcessing(ctx context.Context, payload fulfillment.Payload) (fulfillment.StatusUpdate, error) {
	update, err := a.steps.MarkProcessing(ctx, payload)
	return update, classify(err)
}

func (a *Activities) Charge(ctx context.Context, payload fulfillment.Payload) (fulfillment.ChargeOutcome, error) {
	outcome, err := a.steps.Charge(ctx, payload)
	return outcome, classify(err)
}

func (a *Activities) UpdateStatus(ctx context.Context, in UpdateStatusInput) (fulfillment.StatusUpdate, error) {
	update, err := a.steps.UpdateStatus(ctx, in.Payload, in.Outcome)
	return update, classify(err)
}

func (a *Activities) Notify(ctx context.Context, in NotifyInput) (fulfillment.Notification, error) {
	notification, err := a.steps.Notify(ctx, in.Payload, in.Update)
	return notification, classify(err)
}

// classify marks validation and not-found errors as non-retryable: another
// attempt would see the same input.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errs.IsValidation(err) || errors.Is(err, errs.ErrObjectNotFound) {
		return temporal.NewNonRetryableApplicationError(err.Error(), "InvalidInput", err)
	}
	return err
}
