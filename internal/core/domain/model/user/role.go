package user

import "lastmile/internal/pkg/errs"

// Role describes what side of the marketplace a user belongs to.
type Role struct {
	name string
}

var (
	// RoleSeller places orders and funds their escrow.
	RoleSeller = Role{name: "seller"}
	// RoleCourier accepts and delivers orders.
	RoleCourier = Role{name: "courier"}
)

// RoleFromString parses a role from its wire representation.
func RoleFromString(name string) (Role, error) {
	switch name {
	case RoleSeller.name:
		return RoleSeller, nil
	case RoleCourier.name:
		return RoleCourier, nil
	default:
		return Role{}, errs.NewValueIsInvalidError("role")
	}
}

// Validate rejects the zero value.
func (r Role) Validate() error {
	if r.name == "" {
		return errs.NewValueIsRequiredError("role")
	}
	return nil
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return r.name
}

// IsSeller reports whether the role is the seller side.
func (r Role) IsSeller() bool {
	return r == RoleSeller
}

// IsCourier reports whether the role is the courier side.
func (r Role) IsCourier() bool {
	return r == RoleCourier
}
