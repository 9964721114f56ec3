package ledgerrepo

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GormLedgerRepository implements ports.LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Add persists the given entries in a single insert.
func (r *GormLedgerRepository) Add(ctx context.Context, entries ...*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(entry))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetByUser retrieves the user's entries, newest first, up to limit.
// A non-positive limit returns the full history.
func (r *GormLedgerRepository) GetByUser(
	ctx context.Context,
	userID kernel.UUID,
	limit int,
) ([]*ledger.Entry, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var dtos []EntryDTO
	if err := tx.Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
