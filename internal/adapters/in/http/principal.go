package http

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/user"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// Principal is the authenticated caller of a request. Identity itself comes
// from the X-User-ID header (authentication is handled upstream); the
// resolver only confirms the user exists and loads their role.
type Principal struct {
	ID   kernel.UUID
	Role user.Role
}

// PrincipalResolver looks up the caller behind an incoming request.
type PrincipalResolver interface {
	Resolve(ctx context.Context, userID kernel.UUID) (Principal, error)
}

// GormPrincipalResolver resolves principals against the users table.
type GormPrincipalResolver struct {
	db *gorm.DB
}

// NewGormPrincipalResolver creates a resolver backed by the given database.
func NewGormPrincipalResolver(db *gorm.DB) GormPrincipalResolver {
	return GormPrincipalResolver{db: db}
}

// Resolve loads the user's role, or ObjectNotFound for an unknown ID.
func (r GormPrincipalResolver) Resolve(ctx context.Context, userID kernel.UUID) (Principal, error) {
	var row struct {
		Found bool
		Role  string
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT TRUE AS found, role
		FROM users
		WHERE id = ?
	`, userID.Bytes()).Scan(&row).Error
	if err != nil {
		return Principal{}, err
	}
	if !row.Found {
		return Principal{}, errs.NewObjectNotFoundError("userID", userID.String())
	}

	role, err := user.RoleFromString(row.Role)
	if err != nil {
		return Principal{}, err
	}

	return Principal{ID: userID, Role: role}, nil
}
