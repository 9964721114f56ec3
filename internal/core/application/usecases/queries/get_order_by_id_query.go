package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetOrderByIDQueryIsNotConstructed = errors.New(
	"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
)

// GetOrderByIDQuery retrieves one order with its items for display. Only the
// seller who placed the order or the courier carrying it may look.
type GetOrderByIDQuery struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query for a single order.
func NewGetOrderByIDQuery(orderID, requesterID kernel.UUID) (GetOrderByIDQuery, error) {
	q := GetOrderByIDQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOrderID(orderID),
		q.setRequesterID(requesterID),
	); err != nil {
		return GetOrderByIDQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

func (q GetOrderByIDQuery) OrderID() kernel.UUID     { return q.orderID }
func (q GetOrderByIDQuery) RequesterID() kernel.UUID { return q.requesterID }

func (q *GetOrderByIDQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

func (q *GetOrderByIDQuery) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	q.requesterID = requesterID
	return nil
}

// GetOrderByIDQueryResponse is the full projection of one order.
type GetOrderByIDQueryResponse struct {
	ID               kernel.UUID
	SellerID         kernel.UUID
	CourierID        *kernel.UUID
	PickupAddress    string
	PickupPoint      kernel.GeoPoint
	Status           string
	DeliveryCost     kernel.Money
	Commission       kernel.Money
	CancelReason     string
	DeliveryDeadline *time.Time
	ConfirmDeadline  *time.Time
	CreatedAt        time.Time
	Items            []OrderItemResponse
}

// OrderItemResponse is one parcel within an order projection.
type OrderItemResponse struct {
	ID          kernel.UUID
	Description string
	Address     string
	Point       kernel.GeoPoint
	Delivered   bool
}
