package orderrepo

import (
	"context"
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order. The write is conditional on the aggregate
// holding a newer version than the row; a lost race surfaces as
// OrderNotAvailable, which is exactly what a second courier accepting the
// same order should see.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version < ?", dto.ID, dto.Version).
		Select("*").Omit("created_at", "Items").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewOrderNotAvailableError(aggregate.ID().String())
	}

	// Item rows only flip their delivered flag after creation.
	for i := range dto.Items {
		err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"delivered"}),
		}).Create(&dto.Items[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllWaiting retrieves the waiting pool ordered oldest first, so couriers
// see orders in the sequence they were published.
func (r *GormOrderRepository) GetAllWaiting(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, "created_at ASC", "status = ?", order.StatusWaiting.String())
}

// GetBySeller retrieves the seller's orders, newest first.
func (r *GormOrderRepository) GetBySeller(ctx context.Context, sellerID kernel.UUID) ([]*order.Order, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, "created_at DESC", "seller_id = ?", sellerID.Bytes())
}

// GetByCourier retrieves the orders assigned to the courier, newest first.
func (r *GormOrderRepository) GetByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, "created_at DESC", "courier_id = ?", courierID.Bytes())
}

// CountCancelledBySellerSince counts the seller's cancellations inside the
// surcharge window. The updated_at column marks the cancellation moment.
func (r *GormOrderRepository) CountCancelledBySellerSince(
	ctx context.Context,
	sellerID kernel.UUID,
	since time.Time,
) (int, error) {
	if err := sellerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("seller_id = ? AND status = ? AND updated_at >= ?",
			sellerID.Bytes(), order.StatusCancelledSeller.String(), since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *GormOrderRepository) find(ctx context.Context, sort, query string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Order(sort).
		Find(&dtos, append([]any{query}, args...)...).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}
	return orders, nil
}
