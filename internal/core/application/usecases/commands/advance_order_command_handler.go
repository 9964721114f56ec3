package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/ports"
)

// AdvanceOrderCommandHandler applies a courier progress step and arms the SLA
// timers inside the same transaction as the status change.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewAdvanceOrderCommandHandler creates a handler for courier progress steps.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the progress command.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
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
	assigned, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = assigned.Advance(cmd.CourierID(), cmd.Next(), now); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, assigned); err != nil {
		return err
	}

	if err = h.scheduleTimers(ctx, uow.TimerJobRepository(), assigned); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, assigned.SellerID(), "order.status_changed", map[string]any{
		"order_id": assigned.ID().String(),
		"status":   assigned.Status().String(),
	})
	return nil
}

func (h *AdvanceOrderCommandHandler) scheduleTimers(ctx context.Context, timers ports.TimerJobRepository, o *order.Order) error {
	switch o.Status() {
	case order.StatusOnWayClient:
		return timers.Add(ctx, ports.TimerJob{
			ID:      kernel.NewUUID(),
			OrderID: o.ID(),
			Kind:    ports.TimerJobDeliveryTimeout,
			FireAt:  *o.DeliveryDeadline(),
		})
	case order.StatusDelivered:
		return timers.Add(ctx, ports.TimerJob{
			ID:      kernel.NewUUID(),
			OrderID: o.ID(),
			Kind:    ports.TimerJobAutoConfirm,
			FireAt:  *o.ConfirmDeadline(),
		})
	}
	return nil
}
