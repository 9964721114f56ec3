package order

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single parcel within an order: what to pick up and where to
// bring it.
type Item struct {
	id          kernel.UUID
	description string
	address     string
	point       kernel.GeoPoint
	delivered   bool

	guard guard.ConstructorGuard
}

// NewItem creates an undelivered item.
func NewItem(id kernel.UUID, description, address string, point kernel.GeoPoint) (*Item, error) {
	it := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		it.setID(id),
		it.setDescription(description),
		it.setAddress(address),
		it.setPoint(point),
	); err != nil {
		return nil, err
	}

	return it, nil
}

// RestoreItem reconstructs an item from persistent storage.
func RestoreItem(id kernel.UUID, description, address string, point kernel.GeoPoint, delivered bool) (*Item, error) {
	it, err := NewItem(id, description, address, point)
	if err != nil {
		return nil, err
	}
	it.delivered = delivered
	return it, nil
}

// Validate ensures the Item was constructed through NewItem or RestoreItem.
func (it *Item) Validate() error {
	if it == nil || it.guard.Validate(ErrItemIsNotConstructed) != nil {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (it *Item) ID() kernel.UUID         { return it.id }
func (it *Item) Description() string     { return it.description }
func (it *Item) Address() string         { return it.address }
func (it *Item) Point() kernel.GeoPoint  { return it.point }
func (it *Item) IsDelivered() bool       { return it.delivered }

// MarkDelivered records the handover of this item.
func (it *Item) MarkDelivered() {
	it.delivered = true
}

func (it *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	it.id = id
	return nil
}

func (it *Item) setDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return errs.NewValueIsRequiredError("description")
	}
	it.description = description
	return nil
}

func (it *Item) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	it.address = address
	return nil
}

func (it *Item) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	it.point = point
	return nil
}
