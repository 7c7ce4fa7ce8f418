package commands

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler is the only writer of a persisted order's status.
//
// It locks the record, checks that the move does not regress the order and
// writes the status column alone. Re-applying the current status is a no-op,
// so a redelivered step is harmless.
//
// Example:
//
//	cmd, _ := NewUpdateOrderStatusCommand(key, order.Paid)
//	update, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no order stored under key
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the status and returns the stored (key, status) pair.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (fulfillment.StatusUpdate, error) {
	if err := cmd.Validate(); err != nil {
		return fulfillment.StatusUpdate{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fulfillment.StatusUpdate{}, errs.NewStorageErrorWithCause("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, cmd.Key())
	if err != nil {
		return fulfillment.StatusUpdate{}, storageUnlessKnown("get order", err)
	}

	previous := aggregate.Status()
	if err = aggregate.ChangeStatus(cmd.Status()); err != nil {
		return fulfillment.StatusUpdate{}, err
	}

	if previous != aggregate.Status() {
		if err = repo.UpdateStatus(ctx, cmd.Key(), aggregate.Status()); err != nil {
			return fulfillment.StatusUpdate{}, storageUnlessKnown("update order status", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return fulfillment.StatusUpdate{}, errs.NewStorageErrorWithCause("commit order status", err)
	}

	return fulfillment.StatusUpdate{
		TenantID: cmd.Key().TenantID().String(),
		OrderID:  cmd.Key().OrderID().String(),
		Status:   aggregate.Status().String(),
	}, nil
}

// storageUnlessKnown keeps not-found and validation errors as they are and
// classifies everything else as a storage failure.
func storageUnlessKnown(operation string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) || errs.IsValidation(err) || errors.Is(err, errs.ErrStorage) {
		return err
	}
	return errs.NewStorageErrorWithCause(operation, err)
}
