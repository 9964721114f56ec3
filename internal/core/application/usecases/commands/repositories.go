// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/user"
	"lastmile/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest facet that covers its repositories;
// the single postgres unit of work satisfies all of them.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// ProfileRepoFactory provides access to the courier profile repository within a transaction.
	ProfileRepoFactory interface {
		CourierProfileRepository() ports.CourierProfileRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// LedgerRepoFactory provides access to the ledger repository within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// ReviewRepoFactory provides access to the review repository within a transaction.
	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// TimerRepoFactory provides access to the timer job repository within a transaction.
	TimerRepoFactory interface {
		TimerJobRepository() ports.TimerJobRepository
	}

	// UserUoW manages transactions touching users and courier profiles only.
	UserUoW interface {
		TxManager
		UserRepoFactory
		ProfileRepoFactory
	}

	// UserUoWFactory creates new user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// WalletUoW manages transactions for deposits and withdrawals.
	WalletUoW interface {
		TxManager
		UserRepoFactory
		LedgerRepoFactory
	}

	// WalletUoWFactory creates new wallet unit of work instances.
	WalletUoWFactory interface {
		Create() WalletUoW
	}

	// OrderUoW manages transactions across the order lifecycle: the order
	// itself, the money of both parties, courier reputation and timers.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
		ProfileRepoFactory
		LedgerRepoFactory
		TimerRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReviewUoW manages transactions for review creation and the rating
	// recompute that follows it.
	ReviewUoW interface {
		TxManager
		ReviewRepoFactory
		UserRepoFactory
		ProfileRepoFactory
		OrderRepoFactory
	}

	// ReviewUoWFactory creates new review unit of work instances.
	ReviewUoWFactory interface {
		Create() ReviewUoW
	}
)

// lockUsersForUpdate loads and row-locks two users in ascending UUID order,
// then returns them matched to the argument order. Acquiring locks in a fixed
// global order keeps concurrent settlements from deadlocking each other.
func lockUsersForUpdate(ctx context.Context, repo ports.UserRepository, firstID, secondID kernel.UUID) (*user.User, *user.User, error) {
	a, b := firstID, secondID
	swapped := false
	if b.Less(a) {
		a, b = b, a
		swapped = true
	}

	lockedA, err := repo.GetForUpdate(ctx, a)
	if err != nil {
		return nil, nil, err
	}
	lockedB, err := repo.GetForUpdate(ctx, b)
	if err != nil {
		return nil, nil, err
	}

	if swapped {
		return lockedB, lockedA, nil
	}
	return lockedA, lockedB, nil
}
