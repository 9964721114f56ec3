package queries

import (
	"context"
	"sort"

	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// GetAvailableOrdersQueryHandler projects the waiting pool through the
// courier's search radius. A courier without a live position gets
// LocationUnavailable: no position, no pool.
type GetAvailableOrdersQueryHandler struct {
	orderRepo   ports.OrderRepository
	profileRepo ports.CourierProfileRepository
	geoIndex    ports.GeoIndex
	matcher     services.CourierMatcher
}

// NewGetAvailableOrdersQueryHandler creates a handler for the visible pool query.
func NewGetAvailableOrdersQueryHandler(
	orderRepo ports.OrderRepository,
	profileRepo ports.CourierProfileRepository,
	geoIndex ports.GeoIndex,
	matcher services.CourierMatcher,
) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{
		orderRepo:   orderRepo,
		profileRepo: profileRepo,
		geoIndex:    geoIndex,
		matcher:     matcher,
	}
}

// Handle executes the query. Matching results are returned oldest first, so
// couriers see the pool in publication order regardless of distance.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	at, err := h.geoIndex.Locate(ctx, query.CourierID())
	if err != nil {
		return nil, err
	}

	profile, err := h.profileRepo.Get(ctx, query.CourierID())
	if err != nil {
		return nil, err
	}

	waiting, err := h.orderRepo.GetAllWaiting(ctx)
	if err != nil {
		return nil, err
	}

	matched, err := h.matcher.OrdersWithinRadius(waiting, at, profile.SearchRadiusKm())
	if err != nil {
		return nil, err
	}

	responses := make([]GetAvailableOrdersQueryResponse, 0, len(matched))
	for _, o := range matched {
		d, distErr := at.DistanceKm(o.PickupPoint())
		if distErr != nil {
			return nil, distErr
		}
		responses = append(responses, GetAvailableOrdersQueryResponse{
			ID:            o.ID(),
			PickupAddress: o.PickupAddress(),
			PickupPoint:   o.PickupPoint(),
			DeliveryCost:  o.DeliveryCost(),
			DistanceKm:    d,
			CreatedAt:     o.CreatedAt(),
		})
	}

	sort.Slice(responses, func(i, j int) bool {
		return responses[i].CreatedAt.Before(responses[j].CreatedAt)
	})

	return responses, nil
}
