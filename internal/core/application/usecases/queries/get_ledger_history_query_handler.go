package queries

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLedgerHistoryQueryHandler retrieves a user's money history from the database.
type GetLedgerHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetLedgerHistoryQueryHandler creates a handler for ledger history queries.
func NewGetLedgerHistoryQueryHandler(db *gorm.DB) GetLedgerHistoryQueryHandler {
	return GetLedgerHistoryQueryHandler{db: db}
}

// Handle executes the query, newest entries first.
func (h GetLedgerHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetLedgerHistoryQuery,
) ([]GetLedgerHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, entry_type, amount_cents, comment, created_at
		FROM ledger_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, query.UserID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetLedgerHistoryQueryResponse, 0)
	for rows.Next() {
		var (
			id          uuid.UUID
			orderID     *uuid.UUID
			entryType   string
			amountCents int64
			comment     string
			createdAt   time.Time
		)
		if err = rows.Scan(&id, &orderID, &entryType, &amountCents, &comment, &createdAt); err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		var entryOrderID *kernel.UUID
		if orderID != nil {
			oID, orderErr := kernel.UUIDFromBytes((*orderID)[:])
			if orderErr != nil {
				return nil, orderErr
			}
			entryOrderID = &oID
		}

		entries = append(entries, GetLedgerHistoryQueryResponse{
			ID:        entryID,
			OrderID:   entryOrderID,
			EntryType: entryType,
			Amount:    kernel.MoneyFromCents(amountCents),
			Comment:   comment,
			CreatedAt: createdAt,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
