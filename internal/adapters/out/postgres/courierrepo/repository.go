package courierrepo

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierProfileRepository implements ports.CourierProfileRepository using GORM.
type GormCourierProfileRepository struct {
	db *gorm.DB
}

// NewGormCourierProfileRepository creates a new GORM courier profile repository.
func NewGormCourierProfileRepository(db *gorm.DB) *GormCourierProfileRepository {
	return &GormCourierProfileRepository{db: db}
}

// Add saves a new courier profile to the database.
func (r *GormCourierProfileRepository) Add(ctx context.Context, profile *courier.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := fromDomain(profile)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing courier profile. All columns are written so a
// counter reset to zero reaches the row.
func (r *GormCourierProfileRepository) Update(ctx context.Context, profile *courier.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := fromDomain(profile)
	result := r.db.WithContext(ctx).Model(&ProfileDTO{}).
		Where("courier_id = ?", dto.CourierID).
		Select("*").Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courierID", profile.CourierID().String())
	}
	return nil
}

// Get retrieves a courier profile by the owning user's ID.
func (r *GormCourierProfileRepository) Get(ctx context.Context, courierID kernel.UUID) (*courier.Profile, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "courier_id = ?", courierID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courierID", courierID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
