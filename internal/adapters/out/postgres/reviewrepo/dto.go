// Package reviewrepo persists reviews with GORM. The unique index on
// (order_id, reviewer_id) backs the one-review-per-party rule at the
// storage level.
package reviewrepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/review"

	"github.com/google/uuid"
)

// ReviewDTO is the database row behind a review.
type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_order_reviewer"`
	ReviewerID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_order_reviewer"`
	TargetID   uuid.UUID `gorm:"type:uuid;index"`
	Stars      int
	Comment    string
	CreatedAt  time.Time
}

// TableName overrides GORM's default naming to use "reviews".
func (ReviewDTO) TableName() string {
	return "reviews"
}

func fromDomain(aggregate *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		ReviewerID: aggregate.ReviewerID().Bytes(),
		TargetID:   aggregate.TargetID().Bytes(),
		Stars:      aggregate.Stars(),
		Comment:    aggregate.Comment(),
		CreatedAt:  aggregate.CreatedAt(),
	}
}

func toDomain(dto ReviewDTO) (*review.Review, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	reviewerID, err := kernel.UUIDFromBytes(dto.ReviewerID[:])
	if err != nil {
		return nil, err
	}

	targetID, err := kernel.UUIDFromBytes(dto.TargetID[:])
	if err != nil {
		return nil, err
	}

	return review.RestoreReview(
		id, orderID, reviewerID, targetID,
		dto.Stars, dto.Comment, dto.CreatedAt,
	)
}
