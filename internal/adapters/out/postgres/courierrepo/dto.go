// Package courierrepo persists courier profiles with GORM. A profile shares
// its primary key with the owning user row.
package courierrepo

import (
	"time"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ProfileDTO is the database row behind a courier profile.
type ProfileDTO struct {
	CourierID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Transport          string    `gorm:"type:varchar(16)"`
	RatingScore        int
	LateCount          int
	CancelCount        int
	ConsecutiveCancels int
	SearchRadiusKm     float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides GORM's default naming to use "courier_profiles".
func (ProfileDTO) TableName() string {
	return "courier_profiles"
}

func fromDomain(profile *courier.Profile) ProfileDTO {
	return ProfileDTO{
		CourierID:          profile.CourierID().Bytes(),
		Transport:          profile.Transport().String(),
		RatingScore:        profile.RatingScore(),
		LateCount:          profile.LateCount(),
		CancelCount:        profile.CancelCount(),
		ConsecutiveCancels: profile.ConsecutiveCancels(),
		SearchRadiusKm:     profile.SearchRadiusKm(),
	}
}

func toDomain(dto ProfileDTO) (*courier.Profile, error) {
	id, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	transport, err := courier.TransportFromString(dto.Transport)
	if err != nil {
		return nil, err
	}

	return courier.RestoreProfile(
		id, transport,
		dto.RatingScore,
		dto.LateCount,
		dto.CancelCount,
		dto.ConsecutiveCancels,
		dto.SearchRadiusKm,
	)
}
