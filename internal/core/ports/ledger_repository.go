package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for the append-only
// money history. Entries are never updated or deleted.
type LedgerRepository interface {
	// Add persists one or more ledger entries.
	Add(ctx context.Context, entries ...*ledger.Entry) error

	// GetByUser retrieves the user's entries, newest first, up to limit.
	GetByUser(ctx context.Context, userID kernel.UUID, limit int) ([]*ledger.Entry, error)
}
