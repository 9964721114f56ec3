package ledger

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one immutable line of a user's money history. Entries are
// append-only: a reversal is a new entry, never an edit. The amount is signed
// from the user's point of view, so a withdrawal or an outgoing payment is
// negative. Freeze and unfreeze entries carry the moved amount as positive
// and do not change the balance, only the escrowed part.
type Entry struct {
	id        kernel.UUID
	userID    kernel.UUID
	orderID   *kernel.UUID
	entryType EntryType
	amount    kernel.Money
	comment   string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewEntry creates a ledger entry. orderID is nil for deposits and
// withdrawals, which are not tied to an order.
func NewEntry(
	id kernel.UUID,
	userID kernel.UUID,
	orderID *kernel.UUID,
	entryType EntryType,
	amount kernel.Money,
	comment string,
	now time.Time,
) (*Entry, error) {
	e := &Entry{
		orderID:   orderID,
		comment:   comment,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setUserID(userID),
		e.setEntryType(entryType),
		e.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs a ledger entry from persistent storage.
func RestoreEntry(
	id kernel.UUID,
	userID kernel.UUID,
	orderID *kernel.UUID,
	entryType EntryType,
	amount kernel.Money,
	comment string,
	createdAt time.Time,
) (*Entry, error) {
	return NewEntry(id, userID, orderID, entryType, amount, comment, createdAt)
}

// Validate ensures the Entry was constructed through NewEntry or RestoreEntry.
func (e *Entry) Validate() error {
	if e == nil || e.guard.Validate(ErrEntryIsNotConstructed) != nil {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID        { return e.id }
func (e *Entry) UserID() kernel.UUID    { return e.userID }
func (e *Entry) OrderID() *kernel.UUID  { return e.orderID }
func (e *Entry) EntryType() EntryType   { return e.entryType }
func (e *Entry) Amount() kernel.Money   { return e.amount }
func (e *Entry) Comment() string        { return e.comment }
func (e *Entry) CreatedAt() time.Time   { return e.createdAt }

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.userID = id
	return nil
}

func (e *Entry) setEntryType(entryType EntryType) error {
	if err := entryType.Validate(); err != nil {
		return err
	}
	e.entryType = entryType
	return nil
}

func (e *Entry) setAmount(amount kernel.Money) error {
	if amount == 0 {
		return errs.NewValueIsRequiredError("amount")
	}
	e.amount = amount
	return nil
}
