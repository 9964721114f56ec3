package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/user"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// CancelOrderBySellerCommandHandler cancels an order on the seller's behalf.
// The escrow comes back in full; if the courier had already arrived at the
// shop, half of the delivery cost moves to them as compensation.
type CancelOrderBySellerCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     services.Ledger
	notifier   ports.Notifier
}

// NewCancelOrderBySellerCommandHandler creates a handler for seller cancellations.
func NewCancelOrderBySellerCommandHandler(
	uowFactory OrderUoWFactory,
	ledger services.Ledger,
	notifier ports.Notifier,
) CancelOrderBySellerCommandHandler {
	return CancelOrderBySellerCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		notifier:   notifier,
	}
}

// Handle processes the seller cancellation command.
func (h *CancelOrderBySellerCommandHandler) Handle(ctx context.Context, cmd CancelOrderBySellerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	cancelled, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	userRepo := uow.UserRepository()
	var seller, courierUser *user.User
	if assignedID := cancelled.CourierID(); assignedID != nil {
		seller, courierUser, err = lockUsersForUpdate(ctx, userRepo, cmd.SellerID(), *assignedID)
	} else {
		seller, err = userRepo.GetForUpdate(ctx, cmd.SellerID())
	}
	if err != nil {
		return err
	}

	courierAtShop, err := cancelled.CancelBySeller(cmd.SellerID(), cmd.Reason())
	if err != nil {
		return err
	}

	entries, err := h.ledger.ReleaseOnCancel(seller, courierUser, cancelled, courierAtShop, now)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, cancelled); err != nil {
		return err
	}
	if err = userRepo.Update(ctx, seller); err != nil {
		return err
	}
	if courierUser != nil {
		if err = userRepo.Update(ctx, courierUser); err != nil {
			return err
		}
	}
	if err = uow.LedgerRepository().Add(ctx, entries...); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if courierUser != nil {
		h.notifier.Notify(ctx, courierUser.ID(), "order.cancelled_by_seller", map[string]any{
			"order_id":    cancelled.ID().String(),
			"compensated": courierAtShop,
		})
	}
	return nil
}
