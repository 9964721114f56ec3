package services

import (
	"sort"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// CourierMatcher filters the waiting pool down to what a particular courier
// is allowed to see: orders whose pickup point lies within the courier's
// personal search radius, nearest first.
type CourierMatcher struct{}

// NewCourierMatcher creates the matching service.
func NewCourierMatcher() CourierMatcher {
	return CourierMatcher{}
}

// OrdersWithinRadius returns the orders whose pickup point is within
// radiusKm of the courier's position, sorted by distance ascending.
func (m CourierMatcher) OrdersWithinRadius(orders []*order.Order, at kernel.GeoPoint, radiusKm float64) ([]*order.Order, error) {
	if err := at.Validate(); err != nil {
		return nil, err
	}

	type scored struct {
		order    *order.Order
		distance float64
	}

	matched := make([]scored, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}

		d, err := at.DistanceKm(o.PickupPoint())
		if err != nil {
			return nil, err
		}
		if d <= radiusKm {
			matched = append(matched, scored{order: o, distance: d})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].distance < matched[j].distance
	})

	result := make([]*order.Order, 0, len(matched))
	for _, s := range matched {
		result = append(result, s.order)
	}
	return result, nil
}
