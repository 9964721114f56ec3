package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrDepositCommandIsNotConstructed = errors.New(
	"DepositCommand must be created via NewDepositCommand constructor",
)

// DepositCommand represents a request to top up a user's balance.
type DepositCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	amount kernel.Money

	guard guard.ConstructorGuard
}

// NewDepositCommand creates a command to deposit a positive amount.
func NewDepositCommand(userID kernel.UUID, amount kernel.Money) (DepositCommand, error) {
	cmd := DepositCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setAmount(amount),
	); err != nil {
		return DepositCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DepositCommand) Validate() error {
	return c.guard.Validate(ErrDepositCommandIsNotConstructed)
}

func (c DepositCommand) UserID() kernel.UUID  { return c.userID }
func (c DepositCommand) Amount() kernel.Money { return c.amount }

func (c *DepositCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *DepositCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}
	c.amount = amount
	return nil
}
