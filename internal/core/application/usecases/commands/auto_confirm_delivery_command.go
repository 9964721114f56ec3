package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrAutoConfirmDeliveryCommandIsNotConstructed = errors.New(
	"AutoConfirmDeliveryCommand must be created via NewAutoConfirmDeliveryCommand constructor",
)

// AutoConfirmDeliveryCommand is the timer-fired counterpart of
// ConfirmDeliveryCommand, issued when the seller sat out the confirmation
// window.
type AutoConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAutoConfirmDeliveryCommand creates a command to auto-confirm a delivery.
func NewAutoConfirmDeliveryCommand(orderID kernel.UUID) (AutoConfirmDeliveryCommand, error) {
	cmd := AutoConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AutoConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAutoConfirmDeliveryCommandIsNotConstructed)
}

func (c AutoConfirmDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

func (c *AutoConfirmDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
