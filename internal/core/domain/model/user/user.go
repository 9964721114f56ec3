package user

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	// DefaultRating is the star rating a freshly registered user starts with.
	DefaultRating = 5.0
	// MinRating and MaxRating bound the visible star rating.
	MinRating = 1.0
	MaxRating = 5.0
)

// Domain errors for user operations.
var (
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
)

// User is the aggregate root for a marketplace participant: a seller placing
// delivery orders or a courier fulfilling them. It owns the money invariants
// of the system:
//
//   - balance >= 0
//   - 0 <= frozenBalance <= balance
//
// Every mutation method re-establishes both invariants or fails without
// changing state. Balances only move through the Ledger domain service, which
// pairs each mutation with an append-only ledger entry.
type User struct {
	id            kernel.UUID
	role          Role
	status        Status
	balance       kernel.Money
	frozenBalance kernel.Money
	rating        float64
	blockedUntil  *time.Time
	// extraCommissionBP is the seller surcharge in basis points, raised by the
	// reputation policy after repeated cancellations.
	extraCommissionBP int64

	guard guard.ConstructorGuard
}

// NewUser creates a user in Active status with zero balances and the default rating.
func NewUser(id kernel.UUID, role Role) (*User, error) {
	u := &User{
		status: StatusActive,
		rating: DefaultRating,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a user aggregate from persistent storage.
func RestoreUser(
	id kernel.UUID,
	role Role,
	status Status,
	balance kernel.Money,
	frozenBalance kernel.Money,
	rating float64,
	blockedUntil *time.Time,
	extraCommissionBP int64,
) (*User, error) {
	u := &User{
		blockedUntil:      blockedUntil,
		extraCommissionBP: extraCommissionBP,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setRole(role),
		u.setStatus(status),
		u.setBalances(balance, frozenBalance),
		u.SetRating(rating),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the User instance was constructed through NewUser or RestoreUser.
func (u *User) Validate() error {
	if u == nil || u.guard.Validate(ErrUserIsNotConstructed) != nil {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Role returns the user's marketplace role.
func (u *User) Role() Role {
	return u.role
}

// Status returns the user's lifecycle status.
func (u *User) Status() Status {
	return u.status
}

// Balance returns the full balance including frozen funds.
func (u *User) Balance() kernel.Money {
	return u.balance
}

// FrozenBalance returns the escrowed part of the balance.
func (u *User) FrozenBalance() kernel.Money {
	return u.frozenBalance
}

// Available returns the spendable part of the balance: balance minus frozen.
func (u *User) Available() kernel.Money {
	return u.balance.Sub(u.frozenBalance)
}

// Rating returns the visible 1-5 star rating.
func (u *User) Rating() float64 {
	return u.rating
}

// BlockedUntil returns the end of the current limitation window, if any.
func (u *User) BlockedUntil() *time.Time {
	return u.blockedUntil
}

// ExtraCommissionBP returns the seller surcharge in basis points.
func (u *User) ExtraCommissionBP() int64 {
	return u.extraCommissionBP
}

// Credit increases the balance by a positive amount.
func (u *User) Credit(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}

	u.balance = u.balance.Add(amount)
	return nil
}

// Debit decreases the balance by a positive amount.
// Fails with InsufficientFunds if the balance would go negative.
func (u *User) Debit(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}
	if u.balance.Sub(amount).IsNegative() {
		return errs.NewInsufficientFundsError(u.id.String())
	}

	u.balance = u.balance.Sub(amount)
	return nil
}

// Freeze reserves a positive amount of the available balance as escrow.
// Fails with InsufficientFunds if available funds do not cover the amount.
func (u *User) Freeze(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}
	if u.Available().Sub(amount).IsNegative() {
		return errs.NewInsufficientFundsError(u.id.String())
	}

	u.frozenBalance = u.frozenBalance.Add(amount)
	return nil
}

// Unfreeze releases up to amount from escrow and returns how much was actually
// released. The frozen balance never goes negative.
func (u *User) Unfreeze(amount kernel.Money) kernel.Money {
	released := amount
	if u.frozenBalance.Sub(released).IsNegative() {
		released = u.frozenBalance
	}

	u.frozenBalance = u.frozenBalance.Sub(released)
	return released
}

// SetStatus moves the user to the given lifecycle status.
func (u *User) SetStatus(status Status) error {
	return u.setStatus(status)
}

// Limit puts the user into Limited status until the given time.
func (u *User) Limit(until time.Time) {
	u.status = StatusLimited
	u.blockedUntil = &until
}

// ClearLimit restores an expired limitation back to Active.
func (u *User) ClearLimit() {
	u.status = StatusActive
	u.blockedUntil = nil
}

// SetRating updates the visible star rating, bounded to [MinRating, MaxRating].
func (u *User) SetRating(rating float64) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	u.rating = rating
	return nil
}

// SetExtraCommissionBP sets the seller surcharge in basis points.
func (u *User) SetExtraCommissionBP(bp int64) error {
	if bp < 0 {
		return errs.NewValueIsInvalidError("extraCommissionBP")
	}

	u.extraCommissionBP = bp
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	u.status = status
	return nil
}

func (u *User) setBalances(balance, frozen kernel.Money) error {
	if balance.IsNegative() {
		return errs.NewValueIsInvalidError("balance")
	}
	if frozen.IsNegative() || balance.Sub(frozen).IsNegative() {
		return errs.NewValueIsInvalidError("frozenBalance")
	}

	u.balance = balance
	u.frozenBalance = frozen
	return nil
}
