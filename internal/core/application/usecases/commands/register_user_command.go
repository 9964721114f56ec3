package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/user"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand represents a request to register a marketplace
// participant. Couriers additionally declare their transport.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	role      user.Role
	transport courier.Transport

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand creates a command to register a user. The transport
// is required for couriers and ignored for sellers.
func NewRegisterUserCommand(userID kernel.UUID, role user.Role, transport courier.Transport) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setRole(role),
	); err != nil {
		return RegisterUserCommand{}, err
	}
	if err := cmd.setTransport(transport); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID          { return c.userID }
func (c RegisterUserCommand) Role() user.Role              { return c.role }
func (c RegisterUserCommand) Transport() courier.Transport { return c.transport }

func (c *RegisterUserCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *RegisterUserCommand) setRole(role user.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}

func (c *RegisterUserCommand) setTransport(transport courier.Transport) error {
	if c.role.IsCourier() {
		if err := transport.Validate(); err != nil {
			return errs.NewValueIsRequiredError("transport")
		}
		c.transport = transport
	}
	return nil
}
