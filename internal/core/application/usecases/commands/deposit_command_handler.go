package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/services"
)

// DepositCommandHandler credits a user's balance and records the deposit in
// the ledger, atomically.
type DepositCommandHandler struct {
	uowFactory WalletUoWFactory
	ledger     services.Ledger
}

// NewDepositCommandHandler creates a handler for balance deposits.
func NewDepositCommandHandler(uowFactory WalletUoWFactory, ledger services.Ledger) DepositCommandHandler {
	return DepositCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
	}
}

// Handle processes the deposit command.
func (h *DepositCommandHandler) Handle(ctx context.Context, cmd DepositCommand) error {
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

	entry, err := h.ledger.Deposit(account, cmd.Amount(), time.Now().UTC())
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
