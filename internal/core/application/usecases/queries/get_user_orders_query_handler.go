package queries

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler retrieves a user's order history from the database.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for order history queries.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle executes the query. Sellers see the orders they placed, couriers
// the orders they carried; both roles go through the same projection.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) ([]GetUserOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, pickup_address, status, delivery_cents, created_at
		FROM orders
		WHERE seller_id = ? OR courier_id = ?
		ORDER BY created_at DESC
	`, query.UserID().Bytes(), query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetUserOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id            uuid.UUID
			pickupAddress string
			status        string
			deliveryCents int64
			createdAt     time.Time
		)
		if err = rows.Scan(&id, &pickupAddress, &status, &deliveryCents, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, GetUserOrdersQueryResponse{
			ID:            orderID,
			PickupAddress: pickupAddress,
			Status:        status,
			DeliveryCost:  kernel.MoneyFromCents(deliveryCents),
			CreatedAt:     createdAt,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
