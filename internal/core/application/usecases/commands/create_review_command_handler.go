package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/review"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// reviewsToComplete is how many reviews close out a confirmed order.
const reviewsToComplete = 2

// CreateReviewCommandHandler stores a review, recomputes the target's
// visible rating (and internal score for couriers) and completes the order
// once both parties have spoken.
type CreateReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
	rating     services.RatingCalculator
	notifier   ports.Notifier
}

// NewCreateReviewCommandHandler creates a handler for review creation.
func NewCreateReviewCommandHandler(
	uowFactory ReviewUoWFactory,
	rating services.RatingCalculator,
	notifier ports.Notifier,
) CreateReviewCommandHandler {
	return CreateReviewCommandHandler{
		uowFactory: uowFactory,
		rating:     rating,
		notifier:   notifier,
	}
}

// Handle processes the review command.
func (h *CreateReviewCommandHandler) Handle(ctx context.Context, cmd CreateReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	reviewed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if reviewed.Status() != order.StatusConfirmed && reviewed.Status() != order.StatusCompleted {
		return errs.NewConflictError("order is not reviewable yet")
	}

	targetID, err := counterpart(reviewed, cmd.ReviewerID())
	if err != nil {
		return err
	}

	reviewRepo := uow.ReviewRepository()
	already, err := reviewRepo.Exists(ctx, cmd.OrderID(), cmd.ReviewerID())
	if err != nil {
		return err
	}
	if already {
		return errs.NewConflictError("order already reviewed by this user")
	}

	newReview, err := review.NewReview(
		kernel.NewUUID(), cmd.OrderID(), cmd.ReviewerID(), targetID,
		cmd.Stars(), cmd.Comment(), now,
	)
	if err != nil {
		return err
	}
	if err = reviewRepo.Add(ctx, newReview); err != nil {
		return err
	}

	if err = h.recomputeRating(ctx, uow, targetID); err != nil {
		return err
	}

	count, err := reviewRepo.CountByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if count >= reviewsToComplete && reviewed.Status() == order.StatusConfirmed {
		if err = reviewed.Complete(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, reviewed); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, targetID, "review.received", map[string]any{
		"order_id": cmd.OrderID().String(),
		"stars":    cmd.Stars(),
	})
	return nil
}

// recomputeRating refreshes the target's star rating from the full review
// history, and for couriers the internal 0-100 score as well.
func (h *CreateReviewCommandHandler) recomputeRating(ctx context.Context, uow ReviewUoW, targetID kernel.UUID) error {
	stars, err := uow.ReviewRepository().GetStarsByTarget(ctx, targetID)
	if err != nil {
		return err
	}
	mean := h.rating.MeanStars(stars)
	if mean == 0 {
		return nil
	}

	userRepo := uow.UserRepository()
	target, err := userRepo.GetForUpdate(ctx, targetID)
	if err != nil {
		return err
	}
	if err = target.SetRating(mean); err != nil {
		return err
	}
	if err = userRepo.Update(ctx, target); err != nil {
		return err
	}

	if !target.Role().IsCourier() {
		return nil
	}

	profileRepo := uow.CourierProfileRepository()
	profile, err := profileRepo.Get(ctx, targetID)
	if err != nil {
		return err
	}
	if err = profile.SetRatingScore(h.rating.CourierScore(mean, profile.LateCount())); err != nil {
		return err
	}
	return profileRepo.Update(ctx, profile)
}

// counterpart resolves who a review is about: the seller reviews the
// courier, the courier reviews the seller, nobody else has a say.
func counterpart(o *order.Order, reviewerID kernel.UUID) (kernel.UUID, error) {
	assignedID := o.CourierID()
	if assignedID == nil {
		return kernel.UUID{}, errs.NewConflictError("order has no courier to review")
	}

	switch {
	case o.SellerID().IsEqual(reviewerID):
		return *assignedID, nil
	case assignedID.IsEqual(reviewerID):
		return o.SellerID(), nil
	default:
		return kernel.UUID{}, errs.NewForbiddenError("reviewer is not a party of the order")
	}
}
