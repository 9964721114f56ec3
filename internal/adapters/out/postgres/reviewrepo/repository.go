package reviewrepo

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/review"

	"gorm.io/gorm"
)

// GormReviewRepository implements ports.ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GORM review repository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Add saves a new review to the database.
func (r *GormReviewRepository) Add(ctx context.Context, aggregate *review.Review) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Exists reports whether the reviewer already reviewed the order.
func (r *GormReviewRepository) Exists(ctx context.Context, orderID, reviewerID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}
	if err := reviewerID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&ReviewDTO{}).
		Where("order_id = ? AND reviewer_id = ?", orderID.Bytes(), reviewerID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByOrder counts the reviews written for the order.
func (r *GormReviewRepository) CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&ReviewDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// GetStarsByTarget retrieves every star value ever given to the user.
func (r *GormReviewRepository) GetStarsByTarget(ctx context.Context, targetID kernel.UUID) ([]int, error) {
	if err := targetID.Validate(); err != nil {
		return nil, err
	}

	var stars []int
	err := r.db.WithContext(ctx).Model(&ReviewDTO{}).
		Where("target_id = ?", targetID.Bytes()).
		Pluck("stars", &stars).Error
	if err != nil {
		return nil, err
	}
	return stars, nil
}
