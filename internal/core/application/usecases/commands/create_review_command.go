package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/review"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCreateReviewCommandIsNotConstructed = errors.New(
	"CreateReviewCommand must be created via NewCreateReviewCommand constructor",
)

// CreateReviewCommand represents one party rating the other after a
// delivery.
type CreateReviewCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	reviewerID kernel.UUID
	stars      int
	comment    string

	guard guard.ConstructorGuard
}

// NewCreateReviewCommand creates a command to leave a 1-5 star review.
func NewCreateReviewCommand(orderID, reviewerID kernel.UUID, stars int, comment string) (CreateReviewCommand, error) {
	cmd := CreateReviewCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReviewerID(reviewerID),
		cmd.setStars(stars),
	); err != nil {
		return CreateReviewCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateReviewCommand) Validate() error {
	return c.guard.Validate(ErrCreateReviewCommandIsNotConstructed)
}

func (c CreateReviewCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateReviewCommand) ReviewerID() kernel.UUID { return c.reviewerID }
func (c CreateReviewCommand) Stars() int              { return c.stars }
func (c CreateReviewCommand) Comment() string         { return c.comment }

func (c *CreateReviewCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateReviewCommand) setReviewerID(reviewerID kernel.UUID) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}
	c.reviewerID = reviewerID
	return nil
}

func (c *CreateReviewCommand) setStars(stars int) error {
	if stars < review.MinStars || stars > review.MaxStars {
		return errs.NewValueIsOutOfRangeError("stars", stars, review.MinStars, review.MaxStars)
	}
	c.stars = stars
	return nil
}
