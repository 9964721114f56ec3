// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the aggregate write model and project rows straight
// into response structs; the one exception is the available-orders query,
// which needs the domain matcher to apply the courier's search radius.
package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery retrieves the slice of the waiting pool a courier
// is allowed to see: orders whose pickup point lies within the courier's
// personal search radius, oldest first.
type GetAvailableOrdersQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for the courier's visible pool.
func NewGetAvailableOrdersQuery(courierID kernel.UUID) (GetAvailableOrdersQuery, error) {
	q := GetAvailableOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setCourierID(courierID); err != nil {
		return GetAvailableOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// CourierID returns the requesting courier's identifier.
func (q GetAvailableOrdersQuery) CourierID() kernel.UUID { return q.courierID }

func (q *GetAvailableOrdersQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	q.courierID = courierID
	return nil
}

// GetAvailableOrdersQueryResponse is one visible waiting order.
type GetAvailableOrdersQueryResponse struct {
	ID            kernel.UUID
	PickupAddress string
	PickupPoint   kernel.GeoPoint
	DeliveryCost  kernel.Money
	DistanceKm    float64
	CreatedAt     time.Time
}
