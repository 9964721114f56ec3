// Package userrepo persists user aggregates with GORM, mapping between the
// private-field domain model and a flat relational row.
package userrepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the database row behind a user aggregate. Balances are stored
// in cents; role and status keep their canonical string names.
type UserDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role              string    `gorm:"type:varchar(16);index"`
	Status            string    `gorm:"type:varchar(16)"`
	BalanceCents      int64
	FrozenCents       int64
	Rating            float64
	BlockedUntil      *time.Time
	ExtraCommissionBP int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(aggregate *user.User) UserDTO {
	return UserDTO{
		ID:                aggregate.ID().Bytes(),
		Role:              aggregate.Role().String(),
		Status:            aggregate.Status().String(),
		BalanceCents:      int64(aggregate.Balance()),
		FrozenCents:       int64(aggregate.FrozenBalance()),
		Rating:            aggregate.Rating(),
		BlockedUntil:      aggregate.BlockedUntil(),
		ExtraCommissionBP: aggregate.ExtraCommissionBP(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := user.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	status, err := user.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id, role, status,
		kernel.MoneyFromCents(dto.BalanceCents),
		kernel.MoneyFromCents(dto.FrozenCents),
		dto.Rating,
		dto.BlockedUntil,
		dto.ExtraCommissionBP,
	)
}
