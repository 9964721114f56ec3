package ports

import (
	"context"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user aggregate to storage.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user aggregate.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetForUpdate retrieves a user aggregate and locks its row for the
	// remainder of the transaction. When several users take part in one
	// money movement, callers must acquire the locks in ascending UUID
	// order to avoid deadlocks.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// CourierProfileRepository defines the persistence contract for courier
// profiles. A profile shares its identifier with the owning user.
type CourierProfileRepository interface {
	// Add persists a new courier profile to storage.
	Add(ctx context.Context, profile *courier.Profile) error

	// Update persists changes to an existing courier profile.
	Update(ctx context.Context, profile *courier.Profile) error

	// Get retrieves a courier profile by the owning user's identifier.
	Get(ctx context.Context, courierID kernel.UUID) (*courier.Profile, error)
}
