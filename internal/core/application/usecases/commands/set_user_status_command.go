package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/user"
	"lastmile/internal/pkg/guard"
)

var ErrSetUserStatusCommandIsNotConstructed = errors.New(
	"SetUserStatusCommand must be created via NewSetUserStatusCommand constructor",
)

// SetUserStatusCommand represents an operator changing a user's lifecycle
// status: activating a pending account, blocking an abusive one.
type SetUserStatusCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	status user.Status

	guard guard.ConstructorGuard
}

// NewSetUserStatusCommand creates a command to set a user's status.
func NewSetUserStatusCommand(userID kernel.UUID, status user.Status) (SetUserStatusCommand, error) {
	cmd := SetUserStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setStatus(status),
	); err != nil {
		return SetUserStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetUserStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetUserStatusCommandIsNotConstructed)
}

func (c SetUserStatusCommand) UserID() kernel.UUID { return c.userID }
func (c SetUserStatusCommand) Status() user.Status { return c.status }

func (c *SetUserStatusCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *SetUserStatusCommand) setStatus(status user.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
