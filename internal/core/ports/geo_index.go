package ports

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
)

// CourierLocation is a live position inside the geo index.
type CourierLocation struct {
	CourierID  kernel.UUID
	Point      kernel.GeoPoint
	DistanceKm float64
	SeenAt     time.Time
}

// GeoIndex tracks the last reported courier positions. Entries expire after
// the index's TTL; an expired courier is simply absent.
type GeoIndex interface {
	// Update stores the courier's current position.
	Update(ctx context.Context, courierID kernel.UUID, point kernel.GeoPoint) error

	// Locate returns the courier's live position. Returns LocationUnavailable
	// when the courier never reported or the entry expired.
	Locate(ctx context.Context, courierID kernel.UUID) (kernel.GeoPoint, error)

	// FindNearby returns up to limit couriers within radiusKm of the point,
	// nearest first. A non-positive radius disables the distance gate.
	FindNearby(ctx context.Context, point kernel.GeoPoint, radiusKm float64, limit int) ([]CourierLocation, error)

	// Remove drops the courier from the index.
	Remove(ctx context.Context, courierID kernel.UUID) error
}
