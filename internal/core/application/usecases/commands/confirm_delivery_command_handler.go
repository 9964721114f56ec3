package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// ConfirmDeliveryCommandHandler confirms a delivered order and settles it:
// escrow released, courier paid, commission collected. A race with the
// auto-confirm timer is resolved by the Delivered-status precondition.
type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     services.Ledger
	reputation services.ReputationPolicy
	notifier   ports.Notifier
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	ledger services.Ledger,
	reputation services.ReputationPolicy,
	notifier ports.Notifier,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		reputation: reputation,
		notifier:   notifier,
	}
}

// Handle processes the confirmation command.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
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
	confirmed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = confirmed.Confirm(cmd.SellerID()); err != nil {
		return err
	}

	if err = settleConfirmedOrder(ctx, uow, h.ledger, h.reputation, confirmed, now); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, confirmed); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if assignedID := confirmed.CourierID(); assignedID != nil {
		h.notifier.Notify(ctx, *assignedID, "order.confirmed", map[string]any{
			"order_id": confirmed.ID().String(),
		})
	}
	return nil
}
