package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrWithdrawCommandIsNotConstructed = errors.New(
	"WithdrawCommand must be created via NewWithdrawCommand constructor",
)

// WithdrawCommand represents a request to take funds out of a user's
// available balance. The tier minimum is enforced by the ledger service.
type WithdrawCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	amount kernel.Money

	guard guard.ConstructorGuard
}

// NewWithdrawCommand creates a command to withdraw a positive amount.
func NewWithdrawCommand(userID kernel.UUID, amount kernel.Money) (WithdrawCommand, error) {
	cmd := WithdrawCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setAmount(amount),
	); err != nil {
		return WithdrawCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawCommandIsNotConstructed)
}

func (c WithdrawCommand) UserID() kernel.UUID  { return c.userID }
func (c WithdrawCommand) Amount() kernel.Money { return c.amount }

func (c *WithdrawCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *WithdrawCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}
	c.amount = amount
	return nil
}
