// Package orderrepo persists order aggregates with GORM. An order row owns
// its item rows; the aggregate's version column backs optimistic locking on
// the waiting pool.
package orderrepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row behind an order aggregate. Money columns are
// stored in cents; updated_at doubles as the cancellation timestamp used by
// the seller surcharge window, since a cancellation is the last write a
// cancelled order ever sees.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SellerID         uuid.UUID  `gorm:"type:uuid;index"`
	CourierID        *uuid.UUID `gorm:"type:uuid;index"`
	PickupAddress    string
	PickupLat        float64
	PickupLong       float64
	Status           string `gorm:"type:varchar(24);index"`
	DeliveryCents    int64
	CommissionCents  int64
	CancelReason     string
	DeliveryDeadline *time.Time
	ConfirmDeadline  *time.Time
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Items            []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the database row behind a single parcel within an order.
type ItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Description string
	Address     string
	Lat         float64
	Long        float64
	Delivered   bool
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, it := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:          it.ID().Bytes(),
			OrderID:     aggregate.ID().Bytes(),
			Description: it.Description(),
			Address:     it.Address(),
			Lat:         it.Point().Lat(),
			Long:        it.Point().Long(),
			Delivered:   it.IsDelivered(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		SellerID:         aggregate.SellerID().Bytes(),
		CourierID:        courierID,
		PickupAddress:    aggregate.PickupAddress(),
		PickupLat:        aggregate.PickupPoint().Lat(),
		PickupLong:       aggregate.PickupPoint().Long(),
		Status:           aggregate.Status().String(),
		DeliveryCents:    int64(aggregate.DeliveryCost()),
		CommissionCents:  int64(aggregate.Commission()),
		CancelReason:     aggregate.CancelReason(),
		DeliveryDeadline: aggregate.DeliveryDeadline(),
		ConfirmDeadline:  aggregate.ConfirmDeadline(),
		Version:          aggregate.Version(),
		CreatedAt:        aggregate.CreatedAt(),
		Items:            items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLong)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, sellerID, courierID,
		dto.PickupAddress, point, status,
		kernel.MoneyFromCents(dto.DeliveryCents),
		kernel.MoneyFromCents(dto.CommissionCents),
		dto.CancelReason,
		dto.DeliveryDeadline,
		dto.ConfirmDeadline,
		dto.CreatedAt,
		dto.Version,
		items,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Lat, dto.Long)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, dto.Description, dto.Address, point, dto.Delivered)
}
