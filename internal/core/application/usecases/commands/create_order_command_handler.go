package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// advisoryCandidateLimit caps the couriers notified about a fresh order.
const advisoryCandidateLimit = 50

// CreateOrderCommandHandler publishes a new order: it charges the seller's
// surcharge-adjusted commission into escrow, moves the order into the
// waiting pool and pings nearby couriers.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     services.Ledger
	reputation services.ReputationPolicy
	geoIndex   ports.GeoIndex
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	ledger services.Ledger,
	reputation services.ReputationPolicy,
	geoIndex ports.GeoIndex,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		reputation: reputation,
		geoIndex:   geoIndex,
		notifier:   notifier,
	}
}

// Handle processes the order creation command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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
	seller, err := userRepo.GetForUpdate(ctx, cmd.SellerID())
	if err != nil {
		return err
	}
	if !seller.Role().IsSeller() {
		return errs.NewForbiddenError("only sellers create orders")
	}
	if !seller.Status().IsActive() {
		return errs.NewForbiddenError("seller account is not active")
	}

	orderRepo := uow.OrderRepository()

	// The surcharge follows the seller's recent cancellations, recomputed on
	// every creation so a bad month wears off on its own.
	cancelled, err := orderRepo.CountCancelledBySellerSince(ctx, seller.ID(), now.Add(-services.SellerSurchargeWindow))
	if err != nil {
		return err
	}
	surchargeBP := h.reputation.SellerSurchargeBP(cancelled)
	if err = seller.SetExtraCommissionBP(surchargeBP); err != nil {
		return err
	}
	commission := order.FlatCommission.Add(cmd.DeliveryCost().PercentBP(surchargeBP))

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, spec := range cmd.Items() {
		point, err := kernel.NewGeoPoint(spec.Lat, spec.Long)
		if err != nil {
			return err
		}
		item, err := order.NewItem(kernel.NewUUID(), spec.Description, spec.Address, point)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), seller.ID(), cmd.PickupAddress(), cmd.PickupPoint(),
		cmd.DeliveryCost(), commission, items, now,
	)
	if err != nil {
		return err
	}

	entry, err := h.ledger.FreezeEscrow(seller, newOrder, now)
	if err != nil {
		return err
	}
	if err = newOrder.PlaceInPool(); err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}
	if err = userRepo.Update(ctx, seller); err != nil {
		return err
	}
	if err = uow.LedgerRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyCandidates(ctx, newOrder)
	return nil
}

// notifyCandidates pings online couriers near the pickup point. Advisory
// only: no radius gate, any failure is swallowed by the notifier.
func (h *CreateOrderCommandHandler) notifyCandidates(ctx context.Context, o *order.Order) {
	candidates, err := h.geoIndex.FindNearby(ctx, o.PickupPoint(), 0, advisoryCandidateLimit)
	if err != nil {
		return
	}

	for _, candidate := range candidates {
		h.notifier.Notify(ctx, candidate.CourierID, "order.available", map[string]any{
			"order_id":    o.ID().String(),
			"distance_km": candidate.DistanceKm,
		})
	}
}
