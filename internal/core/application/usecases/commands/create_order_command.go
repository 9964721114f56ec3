package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderItem describes one parcel of a new order.
type CreateOrderItem struct {
	Description string
	Address     string
	Lat         float64
	Long        float64
}

// CreateOrderCommand represents a seller's request to publish a delivery
// order. The delivery cost is the courier's payout; the platform commission
// is computed by the handler on top of it.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	sellerID      kernel.UUID
	pickupAddress string
	pickupPoint   kernel.GeoPoint
	deliveryCost  kernel.Money
	items         []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to publish a new delivery order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	sellerID kernel.UUID,
	pickupAddress string,
	pickupPoint kernel.GeoPoint,
	deliveryCost kernel.Money,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSellerID(sellerID),
		cmd.setPickup(pickupAddress, pickupPoint),
		cmd.setDeliveryCost(deliveryCost),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID         { return c.orderID }
func (c CreateOrderCommand) SellerID() kernel.UUID        { return c.sellerID }
func (c CreateOrderCommand) PickupAddress() string        { return c.pickupAddress }
func (c CreateOrderCommand) PickupPoint() kernel.GeoPoint { return c.pickupPoint }
func (c CreateOrderCommand) DeliveryCost() kernel.Money   { return c.deliveryCost }
func (c CreateOrderCommand) Items() []CreateOrderItem     { return c.items }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	c.sellerID = sellerID
	return nil
}

func (c *CreateOrderCommand) setPickup(address string, point kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if err := point.Validate(); err != nil {
		return err
	}
	c.pickupAddress = address
	c.pickupPoint = point
	return nil
}

func (c *CreateOrderCommand) setDeliveryCost(cost kernel.Money) error {
	if !cost.IsPositive() {
		return errs.NewValueIsInvalidError("deliveryCost")
	}
	c.deliveryCost = cost
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) < order.MinItems || len(items) > order.MaxItems {
		return errs.NewValueIsOutOfRangeError("items", len(items), order.MinItems, order.MaxItems)
	}
	c.items = items
	return nil
}
