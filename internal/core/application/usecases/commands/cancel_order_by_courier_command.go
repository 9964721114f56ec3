package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrCancelOrderByCourierCommandIsNotConstructed = errors.New(
	"CancelOrderByCourierCommand must be created via NewCancelOrderByCourierCommand constructor",
)

// CancelOrderByCourierCommand represents a courier backing out of an
// accepted order before reaching the shop.
type CancelOrderByCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelOrderByCourierCommand creates a command to release an accepted order.
func NewCancelOrderByCourierCommand(orderID, courierID kernel.UUID) (CancelOrderByCourierCommand, error) {
	cmd := CancelOrderByCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return CancelOrderByCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderByCourierCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderByCourierCommandIsNotConstructed)
}

func (c CancelOrderByCourierCommand) OrderID() kernel.UUID   { return c.orderID }
func (c CancelOrderByCourierCommand) CourierID() kernel.UUID { return c.courierID }

func (c *CancelOrderByCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderByCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
