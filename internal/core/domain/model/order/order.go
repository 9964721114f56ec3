package order

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	// MinItems and MaxItems bound the number of parcels per order.
	MinItems = 1
	MaxItems = 10

	// DeliveryTimeout is how long a courier has to hand the order over after
	// leaving the shop.
	DeliveryTimeout = 90 * time.Minute
	// ConfirmTimeout is how long the seller has to confirm a delivered order
	// before it is confirmed automatically.
	ConfirmTimeout = 20 * time.Minute
)

var (
	// MinDeliveryCost is the lower bound for the courier's payout.
	MinDeliveryCost = kernel.MoneyFromUnits(10)
	// FlatCommission is the platform's base fee per order.
	FlatCommission = kernel.MoneyFromUnits(5)

	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the delivery order aggregate. It owns the status machine, the
// escrowed amounts and the timer deadlines. Concurrent acceptance is resolved
// optimistically: every mutation bumps version, and the repository refuses to
// persist a stale aggregate.
type Order struct {
	id            kernel.UUID
	sellerID      kernel.UUID
	courierID     *kernel.UUID
	pickupAddress string
	pickupPoint   kernel.GeoPoint
	status        Status
	deliveryCost  kernel.Money
	commission    kernel.Money
	cancelReason  string

	// deliveryDeadline arms when the courier leaves the shop,
	// confirmDeadline when the order is handed over.
	deliveryDeadline *time.Time
	confirmDeadline  *time.Time

	createdAt time.Time
	version   int64
	items     []*Item

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Created status. The commission is computed by
// the caller from the platform fee and the seller's surcharge and is frozen
// here together with the delivery cost.
func NewOrder(
	id kernel.UUID,
	sellerID kernel.UUID,
	pickupAddress string,
	pickupPoint kernel.GeoPoint,
	deliveryCost kernel.Money,
	commission kernel.Money,
	items []*Item,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    StatusCreated,
		createdAt: now,
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setSellerID(sellerID),
		o.setPickup(pickupAddress, pickupPoint),
		o.setDeliveryCost(deliveryCost),
		o.setCommission(commission),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistent storage.
func RestoreOrder(
	id kernel.UUID,
	sellerID kernel.UUID,
	courierID *kernel.UUID,
	pickupAddress string,
	pickupPoint kernel.GeoPoint,
	status Status,
	deliveryCost kernel.Money,
	commission kernel.Money,
	cancelReason string,
	deliveryDeadline *time.Time,
	confirmDeadline *time.Time,
	createdAt time.Time,
	version int64,
	items []*Item,
) (*Order, error) {
	o := &Order{
		courierID:        courierID,
		cancelReason:     cancelReason,
		deliveryDeadline: deliveryDeadline,
		confirmDeadline:  confirmDeadline,
		createdAt:        createdAt,
		version:          version,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setSellerID(sellerID),
		o.setPickup(pickupAddress, pickupPoint),
		o.setStatus(status),
		o.setDeliveryCost(deliveryCost),
		o.setCommission(commission),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || o.guard.Validate(ErrOrderIsNotConstructed) != nil {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) SellerID() kernel.UUID        { return o.sellerID }
func (o *Order) CourierID() *kernel.UUID      { return o.courierID }
func (o *Order) PickupAddress() string        { return o.pickupAddress }
func (o *Order) PickupPoint() kernel.GeoPoint { return o.pickupPoint }
func (o *Order) Status() Status               { return o.status }
func (o *Order) DeliveryCost() kernel.Money   { return o.deliveryCost }
func (o *Order) Commission() kernel.Money     { return o.commission }
func (o *Order) CancelReason() string         { return o.cancelReason }
func (o *Order) DeliveryDeadline() *time.Time { return o.deliveryDeadline }
func (o *Order) ConfirmDeadline() *time.Time  { return o.confirmDeadline }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) Version() int64               { return o.version }
func (o *Order) Items() []*Item               { return o.items }

// TotalCharge is the amount frozen on the seller's balance for this order:
// the courier's payout plus the platform commission.
func (o *Order) TotalCharge() kernel.Money {
	return o.deliveryCost.Add(o.commission)
}

// IsTerminal reports whether the order reached a final status.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// PlaceInPool publishes a freshly created order to the waiting pool.
func (o *Order) PlaceInPool() error {
	return o.transition(StatusWaiting)
}

// Accept assigns the order to a courier. Only a waiting order can be
// accepted; anything else means another courier won the race or the seller
// cancelled, reported as OrderNotAvailable.
func (o *Order) Accept(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.status != StatusWaiting {
		return errs.NewOrderNotAvailableError(o.id.String())
	}

	if err := o.transition(StatusAccepted); err != nil {
		return err
	}
	o.courierID = &courierID
	return nil
}

// Advance moves the order one courier-driven step forward. Leaving the shop
// arms the delivery timer, handing the order over arms the auto-confirm timer
// and marks every item delivered.
func (o *Order) Advance(courierID kernel.UUID, next Status, now time.Time) error {
	if err := o.ensureAssignedTo(courierID); err != nil {
		return err
	}

	step, ok := o.status.NextCourierStep()
	if !ok || step != next {
		return errs.NewInvalidTransitionError(o.status.String(), next.String())
	}

	if err := o.transition(next); err != nil {
		return err
	}

	switch next {
	case StatusOnWayClient:
		deadline := now.Add(DeliveryTimeout)
		o.deliveryDeadline = &deadline
	case StatusDelivered:
		deadline := now.Add(ConfirmTimeout)
		o.confirmDeadline = &deadline
		for _, it := range o.items {
			it.MarkDelivered()
		}
	}

	return nil
}

// CancelBySeller cancels the order on behalf of its seller.
// courierAtShop reports whether the courier had already arrived at the shop,
// which entitles them to a compensation payout.
func (o *Order) CancelBySeller(sellerID kernel.UUID, reason string) (courierAtShop bool, err error) {
	if !o.sellerID.IsEqual(sellerID) {
		return false, errs.NewForbiddenError("order belongs to another seller")
	}
	if !o.status.IsSellerCancellable() {
		return false, errs.NewInvalidTransitionError(o.status.String(), StatusCancelledSeller.String())
	}

	courierAtShop = o.status == StatusAtShop
	if err := o.transition(StatusCancelledSeller); err != nil {
		return false, err
	}
	o.cancelReason = reason
	return courierAtShop, nil
}

// CancelByCourier releases the order back to the waiting pool. Allowed only
// before the courier reaches the shop.
func (o *Order) CancelByCourier(courierID kernel.UUID) error {
	if err := o.ensureAssignedTo(courierID); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(StatusWaiting) {
		return errs.NewInvalidTransitionError(o.status.String(), StatusWaiting.String())
	}

	if err := o.transition(StatusWaiting); err != nil {
		return err
	}
	o.courierID = nil
	return nil
}

// Confirm records the seller's acknowledgement of the delivery.
func (o *Order) Confirm(sellerID kernel.UUID) error {
	if !o.sellerID.IsEqual(sellerID) {
		return errs.NewForbiddenError("order belongs to another seller")
	}
	return o.transition(StatusConfirmed)
}

// AutoConfirm is the timer-driven variant of Confirm. A no-error result is
// only possible while the order is still in Delivered, so a racing manual
// confirmation makes this fail and the timer job drops out silently.
func (o *Order) AutoConfirm() error {
	return o.transition(StatusConfirmed)
}

// Expire voids an order whose delivery timer ran out.
func (o *Order) Expire() error {
	return o.transition(StatusExpired)
}

// Complete finishes a confirmed order once both reviews are in.
func (o *Order) Complete() error {
	return o.transition(StatusCompleted)
}

func (o *Order) ensureAssignedTo(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID == nil || !o.courierID.IsEqual(courierID) {
		return errs.NewForbiddenError("order is assigned to another courier")
	}
	return nil
}

func (o *Order) transition(next Status) error {
	if !o.status.CanTransitionTo(next) {
		return errs.NewInvalidTransitionError(o.status.String(), next.String())
	}
	o.status = next
	o.version++
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.sellerID = id
	return nil
}

func (o *Order) setPickup(address string, point kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if err := point.Validate(); err != nil {
		return err
	}
	o.pickupAddress = address
	o.pickupPoint = point
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setDeliveryCost(cost kernel.Money) error {
	if cost.Sub(MinDeliveryCost).IsNegative() {
		return errs.NewValueIsOutOfRangeError("deliveryCost", cost.String(), MinDeliveryCost.String(), "unbounded")
	}
	o.deliveryCost = cost
	return nil
}

func (o *Order) setCommission(commission kernel.Money) error {
	if commission.IsNegative() {
		return errs.NewValueIsInvalidError("commission")
	}
	o.commission = commission
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) < MinItems || len(items) > MaxItems {
		return errs.NewValueIsOutOfRangeError("items", len(items), MinItems, MaxItems)
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
