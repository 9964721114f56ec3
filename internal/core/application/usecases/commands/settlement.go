package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"
)

// settleConfirmedOrder runs the money and reputation consequences shared by
// manual and automatic confirmation. The order must already be in Confirmed
// status; the caller persists it afterwards.
func settleConfirmedOrder(
	ctx context.Context,
	uow OrderUoW,
	ledgerSvc services.Ledger,
	reputation services.ReputationPolicy,
	confirmed *order.Order,
	now time.Time,
) error {
	assignedID := confirmed.CourierID()
	if assignedID == nil {
		return errs.NewConflictError("confirmed order has no courier")
	}

	userRepo := uow.UserRepository()
	seller, courierUser, err := lockUsersForUpdate(ctx, userRepo, confirmed.SellerID(), *assignedID)
	if err != nil {
		return err
	}

	entries, err := ledgerSvc.Settle(seller, courierUser, confirmed, now)
	if err != nil {
		return err
	}

	profileRepo := uow.CourierProfileRepository()
	profile, err := profileRepo.Get(ctx, *assignedID)
	if err != nil {
		return err
	}
	if wasDeliveredLate(confirmed) {
		if err = reputation.OnLateDelivery(profile); err != nil {
			return err
		}
	}
	if err = reputation.OnSuccessfulDelivery(profile); err != nil {
		return err
	}

	if err = userRepo.Update(ctx, seller); err != nil {
		return err
	}
	if err = userRepo.Update(ctx, courierUser); err != nil {
		return err
	}
	if err = profileRepo.Update(ctx, profile); err != nil {
		return err
	}
	return uow.LedgerRepository().Add(ctx, entries...)
}

// wasDeliveredLate recovers the handover time from the confirm deadline and
// compares it against the delivery deadline.
func wasDeliveredLate(o *order.Order) bool {
	if o.DeliveryDeadline() == nil || o.ConfirmDeadline() == nil {
		return false
	}
	deliveredAt := o.ConfirmDeadline().Add(-order.ConfirmTimeout)
	return deliveredAt.After(*o.DeliveryDeadline())
}
