package review

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	MinStars = 1
	MaxStars = 5
)

// ErrReviewIsNotConstructed is returned when using an improperly initialized Review.
var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")

// Review is one party's rating of the other for a single delivered order.
// Each order collects at most two: seller about courier and courier about
// seller. The second one completes the order.
type Review struct {
	id         kernel.UUID
	orderID    kernel.UUID
	reviewerID kernel.UUID
	targetID   kernel.UUID
	stars      int
	comment    string
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewReview creates a review with a 1-5 star score.
func NewReview(
	id kernel.UUID,
	orderID kernel.UUID,
	reviewerID kernel.UUID,
	targetID kernel.UUID,
	stars int,
	comment string,
	now time.Time,
) (*Review, error) {
	r := &Review{
		comment:   comment,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setParties(reviewerID, targetID),
		r.setStars(stars),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreReview reconstructs a review from persistent storage.
func RestoreReview(
	id kernel.UUID,
	orderID kernel.UUID,
	reviewerID kernel.UUID,
	targetID kernel.UUID,
	stars int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	return NewReview(id, orderID, reviewerID, targetID, stars, comment, createdAt)
}

// Validate ensures the Review was constructed through NewReview or RestoreReview.
func (r *Review) Validate() error {
	if r == nil || r.guard.Validate(ErrReviewIsNotConstructed) != nil {
		return ErrReviewIsNotConstructed
	}
	return nil
}

func (r *Review) ID() kernel.UUID         { return r.id }
func (r *Review) OrderID() kernel.UUID    { return r.orderID }
func (r *Review) ReviewerID() kernel.UUID { return r.reviewerID }
func (r *Review) TargetID() kernel.UUID   { return r.targetID }
func (r *Review) Stars() int              { return r.stars }
func (r *Review) Comment() string         { return r.comment }
func (r *Review) CreatedAt() time.Time    { return r.createdAt }

func (r *Review) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Review) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.orderID = id
	return nil
}

func (r *Review) setParties(reviewerID, targetID kernel.UUID) error {
	if err := errors.Join(reviewerID.Validate(), targetID.Validate()); err != nil {
		return err
	}
	if reviewerID.IsEqual(targetID) {
		return errs.NewValueIsInvalidError("targetID")
	}
	r.reviewerID = reviewerID
	r.targetID = targetID
	return nil
}

func (r *Review) setStars(stars int) error {
	if stars < MinStars || stars > MaxStars {
		return errs.NewValueIsOutOfRangeError("stars", stars, MinStars, MaxStars)
	}
	r.stars = stars
	return nil
}
