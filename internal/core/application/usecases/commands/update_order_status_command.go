package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand moves one order to a new status.
// The order is addressed by its full composite key, never by order id alone.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	key    kernel.OrderKey
	status order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(key kernel.OrderKey, status order.Status) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKey(key),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Key() kernel.OrderKey {
	return c.key
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c *UpdateOrderStatusCommand) setKey(key kernel.OrderKey) error {
	if err := key.Validate(); err != nil {
		return err
	}

	c.key = key
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
