package queries

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderByIDQueryHandler retrieves one order projection from the database.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for single-order queries.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle executes the query. Requesters who are neither the seller nor the
// assigned courier get Forbidden rather than a peek at someone else's order.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (GetOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	var row struct {
		ID               uuid.UUID
		SellerID         uuid.UUID
		CourierID        *uuid.UUID
		PickupAddress    string
		PickupLat        float64
		PickupLong       float64
		Status           string
		DeliveryCents    int64
		CommissionCents  int64
		CancelReason     string
		DeliveryDeadline *time.Time
		ConfirmDeadline  *time.Time
		CreatedAt        time.Time
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, seller_id, courier_id,
			pickup_address, pickup_lat, pickup_long,
			status, delivery_cents, commission_cents, cancel_reason,
			delivery_deadline, confirm_deadline, created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&row).Error
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	if row.ID == uuid.Nil {
		return GetOrderByIDQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}

	resp, err := h.toResponse(row.ID, row.SellerID, row.CourierID, row.PickupAddress,
		row.PickupLat, row.PickupLong, row.Status, row.DeliveryCents, row.CommissionCents,
		row.CancelReason, row.DeliveryDeadline, row.ConfirmDeadline, row.CreatedAt)
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	requester := query.RequesterID()
	isSeller := resp.SellerID.IsEqual(requester)
	isCourier := resp.CourierID != nil && resp.CourierID.IsEqual(requester)
	if !isSeller && !isCourier {
		return GetOrderByIDQueryResponse{}, errs.NewForbiddenError("order belongs to another user")
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderByIDQueryHandler) toResponse(
	id, sellerID uuid.UUID,
	courierID *uuid.UUID,
	pickupAddress string,
	pickupLat, pickupLong float64,
	status string,
	deliveryCents, commissionCents int64,
	cancelReason string,
	deliveryDeadline, confirmDeadline *time.Time,
	createdAt time.Time,
) (GetOrderByIDQueryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	seller, err := kernel.UUIDFromBytes(sellerID[:])
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	var courier *kernel.UUID
	if courierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*courierID)[:])
		if courierErr != nil {
			return GetOrderByIDQueryResponse{}, courierErr
		}
		courier = &cID
	}

	point, err := kernel.NewGeoPoint(pickupLat, pickupLong)
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	return GetOrderByIDQueryResponse{
		ID:               orderID,
		SellerID:         seller,
		CourierID:        courier,
		PickupAddress:    pickupAddress,
		PickupPoint:      point,
		Status:           status,
		DeliveryCost:     kernel.MoneyFromCents(deliveryCents),
		Commission:       kernel.MoneyFromCents(commissionCents),
		CancelReason:     cancelReason,
		DeliveryDeadline: deliveryDeadline,
		ConfirmDeadline:  confirmDeadline,
		CreatedAt:        createdAt,
	}, nil
}

func (h GetOrderByIDQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, description, address, lat, long, delivered
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			desc      string
			address   string
			lat, long float64
			delivered bool
		)
		if err = rows.Scan(&id, &desc, &address, &lat, &long, &delivered); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		point, pointErr := kernel.NewGeoPoint(lat, long)
		if pointErr != nil {
			return nil, pointErr
		}

		items = append(items, OrderItemResponse{
			ID:          itemID,
			Description: desc,
			Address:     address,
			Point:       point,
			Delivered:   delivered,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
