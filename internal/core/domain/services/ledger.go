package services

import (
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/ledger"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/user"
	"lastmile/internal/pkg/errs"
)

// Withdrawal commission tiers, in basis points of the withdrawn amount.
const (
	WithdrawalLowTierBP  = 300 // 3% for amounts up to the threshold
	WithdrawalHighTierBP = 150 // 1.5% above it

	// SellerCancelPenaltyBP is the share of the delivery cost paid to a
	// courier who was already at the shop when the seller cancelled.
	SellerCancelPenaltyBP = 5000
)

var (
	// MinWithdrawal is the smallest amount a user may withdraw.
	MinWithdrawal = kernel.MoneyFromUnits(50)
	// WithdrawalTierThreshold splits the two commission tiers.
	WithdrawalTierThreshold = kernel.MoneyFromUnits(100)
)

// Ledger is the domain service that moves money. Every mutation of a user's
// balance goes through here so it is always paired with append-only entries.
// The service is pure: callers load the affected users under row locks,
// invoke one operation, then persist users and entries in the same
// transaction.
type Ledger struct{}

// NewLedger creates the money movement service.
func NewLedger() Ledger {
	return Ledger{}
}

// Deposit credits the user's balance.
func (l Ledger) Deposit(u *user.User, amount kernel.Money, now time.Time) (*ledger.Entry, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := u.Credit(amount); err != nil {
		return nil, err
	}

	return ledger.NewEntry(kernel.NewUUID(), u.ID(), nil, ledger.EntryTypeDeposit, amount, "balance top up", now)
}

// Withdraw debits the amount plus a tiered commission from the available
// balance: 3% for amounts up to the tier threshold, 1.5% above it. Amounts
// below MinWithdrawal are rejected.
func (l Ledger) Withdraw(u *user.User, amount kernel.Money, now time.Time) (*ledger.Entry, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if amount.Sub(MinWithdrawal).IsNegative() {
		return nil, errs.NewValueIsOutOfRangeError("amount", amount.String(), MinWithdrawal.String(), "unbounded")
	}

	commission := WithdrawalCommission(amount)
	total := amount.Add(commission)
	if u.Available().Sub(total).IsNegative() {
		return nil, errs.NewInsufficientFundsError(u.ID().String())
	}
	if err := u.Debit(total); err != nil {
		return nil, err
	}

	comment := fmt.Sprintf("withdrawal %s, commission %s", amount.String(), commission.String())
	return ledger.NewEntry(kernel.NewUUID(), u.ID(), nil, ledger.EntryTypeWithdrawal, total.Neg(), comment, now)
}

// WithdrawalCommission returns the commission charged on top of a withdrawal.
func WithdrawalCommission(amount kernel.Money) kernel.Money {
	if amount.Sub(WithdrawalTierThreshold).IsPositive() {
		return amount.PercentBP(WithdrawalHighTierBP)
	}
	return amount.PercentBP(WithdrawalLowTierBP)
}

// FreezeEscrow reserves the order's total charge on the seller's balance.
func (l Ledger) FreezeEscrow(seller *user.User, o *order.Order, now time.Time) (*ledger.Entry, error) {
	if err := seller.Validate(); err != nil {
		return nil, err
	}
	total := o.TotalCharge()
	if err := seller.Freeze(total); err != nil {
		return nil, err
	}

	orderID := o.ID()
	return ledger.NewEntry(kernel.NewUUID(), seller.ID(), &orderID, ledger.EntryTypeFreeze, total, "escrow for order", now)
}

// Settle pays out a completed order: the seller's escrow is released, the
// delivery cost moves to the courier and the commission goes to the platform.
// Entries are returned in the order they should be appended.
func (l Ledger) Settle(seller, courier *user.User, o *order.Order, now time.Time) ([]*ledger.Entry, error) {
	if err := seller.Validate(); err != nil {
		return nil, err
	}
	if err := courier.Validate(); err != nil {
		return nil, err
	}

	total := o.TotalCharge()
	seller.Unfreeze(total)
	if err := seller.Debit(total); err != nil {
		return nil, err
	}
	if err := courier.Credit(o.DeliveryCost()); err != nil {
		return nil, err
	}

	orderID := o.ID()
	entries := make([]*ledger.Entry, 0, 4)
	for _, spec := range []struct {
		userID    kernel.UUID
		entryType ledger.EntryType
		amount    kernel.Money
		comment   string
	}{
		{seller.ID(), ledger.EntryTypeUnfreeze, total, "escrow released on settlement"},
		{seller.ID(), ledger.EntryTypePayment, o.DeliveryCost().Neg(), "delivery payout"},
		{seller.ID(), ledger.EntryTypeCommission, o.Commission().Neg(), "platform commission"},
		{courier.ID(), ledger.EntryTypePayment, o.DeliveryCost(), "delivery payout"},
	} {
		e, err := ledger.NewEntry(kernel.NewUUID(), spec.userID, &orderID, spec.entryType, spec.amount, spec.comment, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// ReleaseOnCancel returns the seller's escrow after a cancellation or an
// expiry. When the courier had already arrived at the shop, half of the
// delivery cost moves from the seller to the courier as compensation.
// courier may be nil when no courier was assigned.
func (l Ledger) ReleaseOnCancel(seller, courier *user.User, o *order.Order, courierAtShop bool, now time.Time) ([]*ledger.Entry, error) {
	if err := seller.Validate(); err != nil {
		return nil, err
	}

	orderID := o.ID()
	total := o.TotalCharge()
	seller.Unfreeze(total)

	unfreeze, err := ledger.NewEntry(
		kernel.NewUUID(), seller.ID(), &orderID,
		ledger.EntryTypeUnfreeze, total, "escrow released on cancellation", now,
	)
	if err != nil {
		return nil, err
	}
	entries := []*ledger.Entry{unfreeze}

	if !courierAtShop || courier == nil {
		return entries, nil
	}
	if err := courier.Validate(); err != nil {
		return nil, err
	}

	compensation := o.DeliveryCost().PercentBP(SellerCancelPenaltyBP)
	if err := seller.Debit(compensation); err != nil {
		return nil, err
	}
	if err := courier.Credit(compensation); err != nil {
		return nil, err
	}

	for _, spec := range []struct {
		userID  kernel.UUID
		amount  kernel.Money
		comment string
	}{
		{seller.ID(), compensation.Neg(), "cancellation compensation to courier"},
		{courier.ID(), compensation, "cancellation compensation"},
	} {
		e, err := ledger.NewEntry(kernel.NewUUID(), spec.userID, &orderID, ledger.EntryTypePayment, spec.amount, spec.comment, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
