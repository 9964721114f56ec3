package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
)

// Notifier pushes order lifecycle events to users. Delivery is best effort:
// implementations must never fail the business transaction over a
// notification.
type Notifier interface {
	Notify(ctx context.Context, userID kernel.UUID, event string, payload map[string]any)
}
