package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// CancelOrderByCourierCommandHandler releases an accepted order back to the
// waiting pool and applies the reputation consequences to the courier.
type CancelOrderByCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	reputation services.ReputationPolicy
	notifier   ports.Notifier
}

// NewCancelOrderByCourierCommandHandler creates a handler for courier cancellations.
func NewCancelOrderByCourierCommandHandler(
	uowFactory OrderUoWFactory,
	reputation services.ReputationPolicy,
	notifier ports.Notifier,
) CancelOrderByCourierCommandHandler {
	return CancelOrderByCourierCommandHandler{
		uowFactory: uowFactory,
		reputation: reputation,
		notifier:   notifier,
	}
}

// Handle processes the courier cancellation command.
func (h *CancelOrderByCourierCommandHandler) Handle(ctx context.Context, cmd CancelOrderByCourierCommand) error {
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

	profileRepo := uow.CourierProfileRepository()
	profile, err := profileRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	released, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = released.CancelByCourier(cmd.CourierID()); err != nil {
		return err
	}

	if err = h.reputation.OnCourierCancel(courierUser, profile, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, released); err != nil {
		return err
	}
	if err = userRepo.Update(ctx, courierUser); err != nil {
		return err
	}
	if err = profileRepo.Update(ctx, profile); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, released.SellerID(), "order.returned_to_pool", map[string]any{
		"order_id": released.ID().String(),
	})
	return nil
}
