package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/fulfillment"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// SubmitOrderResult is the accepted order summary returned to the customer.
type SubmitOrderResult struct {
	OrderID        kernel.UUID
	Status         order.Status
	Subtotal       decimal.Decimal
	DeliveryCharge decimal.Decimal
	Total          decimal.Decimal
	ExecutionID    string
}

// SubmitOrderCommandHandler accepts an order: it persists the record in
// PENDING_PAYMENT and then starts the fulfillment workflow with the full payload.
//
// A failed store write returns errs.ErrStorage and starts nothing.
// A failed workflow start returns errs.ErrExecutionFailure; the order then stays
// in PENDING_PAYMENT until the reconciliation job picks it up.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	workflows  ports.WorkflowStarter
	now        func() time.Time
}

// NewSubmitOrderCommandHandler creates a handler for order submissions.
func NewSubmitOrderCommandHandler(uowFactory OrderUoWFactory, workflows ports.WorkflowStarter) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		workflows:  workflows,
		now:        time.Now,
	}
}

// Handle processes the submission. Every call creates a new order id, so two
// identical submissions produce two orders.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	key, err := kernel.NewOrderKey(cmd.Principal().TenantID(), kernel.NewUUID())
	if err != nil {
		return SubmitOrderResult{}, err
	}

	aggregate, err := order.NewOrder(key, cmd.Principal().Email(), cmd.CutType(), cmd.Pricing(), cmd.Delivery(), h.now())
	if err != nil {
		return SubmitOrderResult{}, err
	}

	if err = h.persist(ctx, aggregate); err != nil {
		return SubmitOrderResult{}, err
	}

	executionID, err := h.workflows.Start(ctx, fulfillment.NewPayload(aggregate))
	if err != nil {
		return SubmitOrderResult{}, errs.NewExecutionFailureErrorWithCause("start fulfillment for order "+key.String(), err)
	}

	pricing := aggregate.Pricing()
	return SubmitOrderResult{
		OrderID:        key.OrderID(),
		Status:         aggregate.Status(),
		Subtotal:       pricing.Subtotal(),
		DeliveryCharge: pricing.DeliveryCharge(),
		Total:          pricing.Total(),
		ExecutionID:    executionID,
	}, nil
}

func (h SubmitOrderCommandHandler) persist(ctx context.Context, aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.NewStorageErrorWithCause("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return errs.NewStorageErrorWithCause("add order", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return errs.NewStorageErrorWithCause("commit order", err)
	}

	return nil
}
