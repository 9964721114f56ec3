package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrCancelOrderBySellerCommandIsNotConstructed = errors.New(
	"CancelOrderBySellerCommand must be created via NewCancelOrderBySellerCommand constructor",
)

// CancelOrderBySellerCommand represents a seller withdrawing their order.
type CancelOrderBySellerCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	sellerID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewCancelOrderBySellerCommand creates a command to cancel an order on the
// seller's behalf. The reason is free text and may be empty.
func NewCancelOrderBySellerCommand(orderID, sellerID kernel.UUID, reason string) (CancelOrderBySellerCommand, error) {
	cmd := CancelOrderBySellerCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSellerID(sellerID),
	); err != nil {
		return CancelOrderBySellerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderBySellerCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderBySellerCommandIsNotConstructed)
}

func (c CancelOrderBySellerCommand) OrderID() kernel.UUID  { return c.orderID }
func (c CancelOrderBySellerCommand) SellerID() kernel.UUID { return c.sellerID }
func (c CancelOrderBySellerCommand) Reason() string        { return c.reason }

func (c *CancelOrderBySellerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderBySellerCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	c.sellerID = sellerID
	return nil
}
