// Package ledgerrepo persists the append-only money history with GORM.
// Entry rows are never updated or deleted.
package ledgerrepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// EntryDTO is the database row behind a ledger entry. The amount keeps its
// sign: credits positive, debits negative.
type EntryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;index"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
	EntryType   string     `gorm:"type:varchar(16)"`
	AmountCents int64
	Comment     string
	CreatedAt   time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "ledger_entries".
func (EntryDTO) TableName() string {
	return "ledger_entries"
}

func fromDomain(entry *ledger.Entry) EntryDTO {
	var orderID *uuid.UUID
	if id := entry.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return EntryDTO{
		ID:          entry.ID().Bytes(),
		UserID:      entry.UserID().Bytes(),
		OrderID:     orderID,
		EntryType:   entry.EntryType().String(),
		AmountCents: int64(entry.Amount()),
		Comment:     entry.Comment(),
		CreatedAt:   entry.CreatedAt(),
	}
}

func toDomain(dto EntryDTO) (*ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	entryType, err := ledger.EntryTypeFromString(dto.EntryType)
	if err != nil {
		return nil, err
	}

	return ledger.RestoreEntry(
		id, userID, orderID, entryType,
		kernel.MoneyFromCents(dto.AmountCents),
		dto.Comment,
		dto.CreatedAt,
	)
}
