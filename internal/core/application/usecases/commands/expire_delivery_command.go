package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrExpireDeliveryCommandIsNotConstructed = errors.New(
	"ExpireDeliveryCommand must be created via NewExpireDeliveryCommand constructor",
)

// ExpireDeliveryCommand is fired by the delivery SLA timer when the courier
// ran out of time on the way to the client.
type ExpireDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewExpireDeliveryCommand creates a command to expire an overdue delivery.
func NewExpireDeliveryCommand(orderID kernel.UUID) (ExpireDeliveryCommand, error) {
	cmd := ExpireDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ExpireDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrExpireDeliveryCommandIsNotConstructed)
}

func (c ExpireDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

func (c *ExpireDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
