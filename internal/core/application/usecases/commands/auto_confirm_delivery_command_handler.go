package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// AutoConfirmDeliveryCommandHandler confirms a delivered order the seller
// ignored past the confirmation window. Timer jobs may fire late or twice,
// so the handler re-validates everything and treats stale state as a no-op.
type AutoConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     services.Ledger
	reputation services.ReputationPolicy
	notifier   ports.Notifier
}

// NewAutoConfirmDeliveryCommandHandler creates a handler for timer-driven confirmation.
func NewAutoConfirmDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	ledger services.Ledger,
	reputation services.ReputationPolicy,
	notifier ports.Notifier,
) AutoConfirmDeliveryCommandHandler {
	return AutoConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		reputation: reputation,
		notifier:   notifier,
	}
}

// Handle processes the auto-confirmation command.
func (h *AutoConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd AutoConfirmDeliveryCommand) error {
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
	// Stale timer: manually confirmed, cancelled or already settled.
	if confirmed.Status() != order.StatusDelivered {
		return nil
	}
	// Early timer: the window has not actually closed yet.
	if deadline := confirmed.ConfirmDeadline(); deadline != nil && now.Before(*deadline) {
		return nil
	}

	if err = confirmed.AutoConfirm(); err != nil {
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

	h.notifier.Notify(ctx, confirmed.SellerID(), "order.auto_confirmed", map[string]any{
		"order_id": confirmed.ID().String(),
	})
	return nil
}
