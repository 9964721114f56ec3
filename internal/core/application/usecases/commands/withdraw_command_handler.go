package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/services"
)

// WithdrawCommandHandler debits a user's available balance, commission
// included, and records the withdrawal in the ledger.
type WithdrawCommandHandler struct {
	uowFactory WalletUoWFactory
	ledger     services.Ledger
}

// NewWithdrawCommandHandler creates a handler for balance withdrawals.
func NewWithdrawCommandHandler(uowFactory WalletUoWFactory, ledger services.Ledger) WithdrawCommandHandler {
	return WithdrawCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
	}
}

// Handle processes the withdrawal command.
func (h *WithdrawCommandHandler) Handle(ctx context.Context, cmd WithdrawCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	account, err := userRepo.GetForUpdate(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	entry, err := h.ledger.Withdraw(account, cmd.Amount(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = userRepo.Update(ctx, account); err != nil {
		return err
	}
	if err = uow.LedgerRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
