package ports

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The update is
	// conditional on the version the aggregate was loaded with; a concurrent
	// change surfaces as OrderNotAvailable.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllWaiting retrieves the waiting pool: orders any courier may accept.
	GetAllWaiting(ctx context.Context) ([]*order.Order, error)

	// GetBySeller retrieves the seller's orders, newest first.
	GetBySeller(ctx context.Context, sellerID kernel.UUID) ([]*order.Order, error)

	// GetByCourier retrieves the orders currently or previously assigned to
	// the courier, newest first.
	GetByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)

	// CountCancelledBySellerSince counts the seller's cancelled orders with a
	// cancellation after the given time. Feeds the commission surcharge.
	CountCancelledBySellerSince(ctx context.Context, sellerID kernel.UUID, since time.Time) (int, error)
}
