package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetBalanceQueryIsNotConstructed = errors.New(
	"GetBalanceQuery must be created via NewGetBalanceQuery constructor",
)

// GetBalanceQuery retrieves a user's wallet state: the full balance, the
// escrow-frozen part and what is left to spend.
type GetBalanceQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBalanceQuery creates a query for the user's wallet.
func NewGetBalanceQuery(userID kernel.UUID) (GetBalanceQuery, error) {
	q := GetBalanceQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setUserID(userID); err != nil {
		return GetBalanceQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetBalanceQueryIsNotConstructed)
}

// UserID returns the requesting user's identifier.
func (q GetBalanceQuery) UserID() kernel.UUID { return q.userID }

func (q *GetBalanceQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	q.userID = userID
	return nil
}

// GetBalanceQueryResponse is the wallet projection.
type GetBalanceQueryResponse struct {
	Balance   kernel.Money
	Frozen    kernel.Money
	Available kernel.Money
}
