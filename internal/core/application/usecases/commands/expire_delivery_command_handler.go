package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// ExpireDeliveryCommandHandler voids an order whose delivery timer ran out:
// the order goes terminal, the seller's escrow comes back in full and the
// failure counts as a late delivery on the courier's record. Stale or early
// timers are silent no-ops.
type ExpireDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     services.Ledger
	reputation services.ReputationPolicy
	notifier   ports.Notifier
}

// NewExpireDeliveryCommandHandler creates a handler for delivery expiry.
func NewExpireDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	ledger services.Ledger,
	reputation services.ReputationPolicy,
	notifier ports.Notifier,
) ExpireDeliveryCommandHandler {
	return ExpireDeliveryCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		reputation: reputation,
		notifier:   notifier,
	}
}

// Handle processes the expiry command.
func (h *ExpireDeliveryCommandHandler) Handle(ctx context.Context, cmd ExpireDeliveryCommand) error {
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
	expired, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	// Stale timer: the handover beat the deadline check.
	if expired.Status() != order.StatusOnWayClient {
		return nil
	}
	// Early timer: the deadline has not actually passed yet.
	if deadline := expired.DeliveryDeadline(); deadline != nil && now.Before(*deadline) {
		return nil
	}

	assignedID := expired.CourierID()
	userRepo := uow.UserRepository()
	seller, err := userRepo.GetForUpdate(ctx, expired.SellerID())
	if err != nil {
		return err
	}

	if err = expired.Expire(); err != nil {
		return err
	}

	entries, err := h.ledger.ReleaseOnCancel(seller, nil, expired, false, now)
	if err != nil {
		return err
	}

	if assignedID != nil {
		profileRepo := uow.CourierProfileRepository()
		profile, err := profileRepo.Get(ctx, *assignedID)
		if err != nil {
			return err
		}
		if err = h.reputation.OnLateDelivery(profile); err != nil {
			return err
		}
		if err = profileRepo.Update(ctx, profile); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, expired); err != nil {
		return err
	}
	if err = userRepo.Update(ctx, seller); err != nil {
		return err
	}
	if err = uow.LedgerRepository().Add(ctx, entries...); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, expired.SellerID(), "order.expired", map[string]any{
		"order_id": expired.ID().String(),
	})
	if assignedID != nil {
		h.notifier.Notify(ctx, *assignedID, "order.expired", map[string]any{
			"order_id": expired.ID().String(),
		})
	}
	return nil
}
