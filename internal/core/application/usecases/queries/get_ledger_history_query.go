package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// DefaultLedgerHistoryLimit bounds a history page when the caller does not
// ask for a specific size.
const DefaultLedgerHistoryLimit = 50

var ErrGetLedgerHistoryQueryIsNotConstructed = errors.New(
	"GetLedgerHistoryQuery must be created via NewGetLedgerHistoryQuery constructor",
)

// GetLedgerHistoryQuery retrieves a user's money history, newest first.
type GetLedgerHistoryQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	limit  int

	guard guard.ConstructorGuard
}

// NewGetLedgerHistoryQuery creates a query for the user's ledger page.
// A zero limit falls back to DefaultLedgerHistoryLimit.
func NewGetLedgerHistoryQuery(userID kernel.UUID, limit int) (GetLedgerHistoryQuery, error) {
	q := GetLedgerHistoryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setUserID(userID),
		q.setLimit(limit),
	); err != nil {
		return GetLedgerHistoryQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLedgerHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetLedgerHistoryQueryIsNotConstructed)
}

func (q GetLedgerHistoryQuery) UserID() kernel.UUID { return q.userID }
func (q GetLedgerHistoryQuery) Limit() int          { return q.limit }

func (q *GetLedgerHistoryQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	q.userID = userID
	return nil
}

func (q *GetLedgerHistoryQuery) setLimit(limit int) error {
	if limit < 0 {
		return errs.NewValueIsOutOfRangeError("limit", limit, 0, "unbounded")
	}
	if limit == 0 {
		limit = DefaultLedgerHistoryLimit
	}
	q.limit = limit
	return nil
}

// GetLedgerHistoryQueryResponse is one money movement in the history.
type GetLedgerHistoryQueryResponse struct {
	ID        kernel.UUID
	OrderID   *kernel.UUID
	EntryType string
	Amount    kernel.Money
	Comment   string
	CreatedAt time.Time
}
