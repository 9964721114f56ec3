package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/review"
)

// ReviewRepository defines the persistence contract for reviews.
type ReviewRepository interface {
	// Add persists a new review.
	Add(ctx context.Context, aggregate *review.Review) error

	// Exists reports whether the reviewer already reviewed the order.
	Exists(ctx context.Context, orderID, reviewerID kernel.UUID) (bool, error)

	// CountByOrder counts the reviews written for the order.
	CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error)

	// GetStarsByTarget retrieves every star value ever given to the user.
	GetStarsByTarget(ctx context.Context, targetID kernel.UUID) ([]int, error)
}
