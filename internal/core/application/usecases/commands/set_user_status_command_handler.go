package commands

import (
	"context"

	"lastmile/internal/core/domain/model/user"
)

// SetUserStatusCommandHandler applies an operator's status decision.
type SetUserStatusCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewSetUserStatusCommandHandler creates a handler for status changes.
func NewSetUserStatusCommandHandler(uowFactory UserUoWFactory) SetUserStatusCommandHandler {
	return SetUserStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
func (h *SetUserStatusCommandHandler) Handle(ctx context.Context, cmd SetUserStatusCommand) error {
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

	if cmd.Status() == user.StatusActive {
		// An explicit activation also clears any pending limitation window.
		account.ClearLimit()
	} else if err = account.SetStatus(cmd.Status()); err != nil {
		return err
	}

	if err = userRepo.Update(ctx, account); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
