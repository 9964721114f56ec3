package queries

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetBalanceQueryHandler retrieves a user's wallet projection from the database.
type GetBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetBalanceQueryHandler creates a handler for wallet queries.
func NewGetBalanceQueryHandler(db *gorm.DB) GetBalanceQueryHandler {
	return GetBalanceQueryHandler{db: db}
}

// Handle executes the query.
func (h GetBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetBalanceQuery,
) (GetBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBalanceQueryResponse{}, err
	}

	var row struct {
		Found        bool
		BalanceCents int64
		FrozenCents  int64
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT TRUE AS found, balance_cents, frozen_cents
		FROM users
		WHERE id = ?
	`, query.UserID().Bytes()).Scan(&row).Error
	if err != nil {
		return GetBalanceQueryResponse{}, err
	}
	if !row.Found {
		return GetBalanceQueryResponse{}, errs.NewObjectNotFoundError("userID", query.UserID().String())
	}

	balance := kernel.MoneyFromCents(row.BalanceCents)
	frozen := kernel.MoneyFromCents(row.FrozenCents)
	return GetBalanceQueryResponse{
		Balance:   balance,
		Frozen:    frozen,
		Available: balance.Sub(frozen),
	}, nil
}
