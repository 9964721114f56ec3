package user

import "lastmile/internal/pkg/errs"

// Status is the account lifecycle state of a user.
//
// Pending accounts have registered but are not yet cleared to operate.
// Active accounts can use every operation of their role.
// Limited couriers cannot accept new orders until BlockedUntil passes;
// the limitation is lifted lazily by the reputation policy.
// Blocked accounts are shut out until an operator intervenes.
type Status struct {
	name string
}

var (
	StatusPending = Status{name: "pending"}
	StatusActive  = Status{name: "active"}
	StatusLimited = Status{name: "limited"}
	StatusBlocked = Status{name: "blocked"}
)

// StatusFromString parses a status from its wire representation.
func StatusFromString(name string) (Status, error) {
	switch name {
	case StatusPending.name:
		return StatusPending, nil
	case StatusActive.name:
		return StatusActive, nil
	case StatusLimited.name:
		return StatusLimited, nil
	case StatusBlocked.name:
		return StatusBlocked, nil
	default:
		return Status{}, errs.NewValueIsInvalidError("status")
	}
}

// Validate rejects the zero value.
func (s Status) Validate() error {
	if s.name == "" {
		return errs.NewValueIsRequiredError("status")
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return s.name
}

// IsActive reports whether the user may operate without restrictions.
func (s Status) IsActive() bool {
	return s == StatusActive
}
