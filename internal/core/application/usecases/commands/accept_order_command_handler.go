package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// AcceptOrderCommandHandler assigns a waiting order to a courier. Races
// between couriers are settled by the order repository's conditional update:
// exactly one Commit succeeds, the rest surface OrderNotAvailable.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	reputation services.ReputationPolicy
	notifier   ports.Notifier
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	reputation services.ReputationPolicy,
	notifier ports.Notifier,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		reputation: reputation,
		notifier:   notifier,
	}
}

// Handle processes the acceptance command.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	userRepo := uow.UserRepository()
	courierUser, err := userRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !courierUser.Role().IsCourier() {
		return errs.NewForbiddenError("only couriers accept orders")
	}
	if h.reputation.IsCourierRestricted(courierUser, now) {
		return errs.NewForbiddenError("courier account is restricted")
	}
	// IsCourierRestricted may have lifted an expired limitation.
	if err = userRepo.Update(ctx, courierUser); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	claimed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = claimed.Accept(cmd.CourierID()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, claimed); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, claimed.SellerID(), "order.accepted", map[string]any{
		"order_id":   claimed.ID().String(),
		"courier_id": cmd.CourierID().String(),
	})
	return nil
}
