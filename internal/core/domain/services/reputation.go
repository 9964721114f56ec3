package services

import (
	"time"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/user"
)

const (
	// CancelLimitDuration is how long a courier is limited after too many
	// consecutive cancellations.
	CancelLimitDuration = 24 * time.Hour

	// SellerSurchargeWindow is the sliding window for counting a seller's
	// cancelled orders.
	SellerSurchargeWindow = 30 * 24 * time.Hour

	// Seller commission surcharge tiers, in basis points of the delivery
	// cost, keyed by cancellations within the window.
	SellerSurchargeHighCount = 10
	SellerSurchargeHighBP    = 500 // 5%
	SellerSurchargeLowCount  = 5
	SellerSurchargeLowBP     = 200 // 2%
)

// ReputationPolicy applies the behavioral rules of the marketplace: late
// penalties, cancellation streaks, radius shrinking and seller surcharges.
// Like the other domain services it is pure; handlers load the aggregates,
// apply a rule and persist the result.
type ReputationPolicy struct{}

// NewReputationPolicy creates the reputation rule set.
func NewReputationPolicy() ReputationPolicy {
	return ReputationPolicy{}
}

// OnLateDelivery records a late delivery against the courier's profile.
func (p ReputationPolicy) OnLateDelivery(profile *courier.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	profile.RegisterLate()
	return nil
}

// OnCourierCancel records a cancelled acceptance. Reaching the consecutive
// cancellation limit puts the courier account into Limited status for
// CancelLimitDuration.
func (p ReputationPolicy) OnCourierCancel(u *user.User, profile *courier.Profile, now time.Time) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	if profile.RegisterCancel() {
		u.Limit(now.Add(CancelLimitDuration))
	}
	return nil
}

// OnSuccessfulDelivery clears the courier's cancellation streak.
func (p ReputationPolicy) OnSuccessfulDelivery(profile *courier.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	profile.ResetConsecutiveCancels()
	return nil
}

// IsCourierRestricted reports whether the courier may not accept orders.
// An expired limitation is lifted lazily here: the caller must persist the
// user when the status flipped back to Active.
func (p ReputationPolicy) IsCourierRestricted(u *user.User, now time.Time) bool {
	if u.Status() == user.StatusLimited {
		until := u.BlockedUntil()
		if until != nil && !now.Before(*until) {
			u.ClearLimit()
			return false
		}
		return true
	}
	return !u.Status().IsActive()
}

// SellerSurchargeBP returns the commission surcharge in basis points for a
// seller with the given number of cancelled orders inside
// SellerSurchargeWindow.
func (p ReputationPolicy) SellerSurchargeBP(cancelledInWindow int) int64 {
	switch {
	case cancelledInWindow >= SellerSurchargeHighCount:
		return SellerSurchargeHighBP
	case cancelledInWindow >= SellerSurchargeLowCount:
		return SellerSurchargeLowBP
	default:
		return 0
	}
}
