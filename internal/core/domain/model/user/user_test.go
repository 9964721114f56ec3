package user_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/user"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("should create active user with defaults", func(t *testing.T) {
		id := kernel.NewUUID()

		u, err := user.NewUser(id, user.RoleCourier)

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.True(t, u.ID().IsEqual(id))
		assert.Equal(t, user.RoleCourier, u.Role())
		assert.Equal(t, user.StatusActive, u.Status())
		assert.Equal(t, kernel.Money(0), u.Balance())
		assert.Equal(t, kernel.Money(0), u.FrozenBalance())
		assert.InDelta(t, user.DefaultRating, u.Rating(), 1e-9)
		assert.Nil(t, u.BlockedUntil())
	})

	t.Run("should fail with empty id", func(t *testing.T) {
		_, err := user.NewUser(kernel.UUID{}, user.RoleSeller)

		require.Error(t, err)
	})

	t.Run("should fail with zero role", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), user.Role{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreUser(t *testing.T) {
	t.Run("should restore all fields", func(t *testing.T) {
		id := kernel.NewUUID()
		until := time.Now().Add(time.Hour)

		u, err := user.RestoreUser(
			id, user.RoleCourier, user.StatusLimited,
			kernel.MoneyFromUnits(100), kernel.MoneyFromUnits(30),
			4.2, &until, 200,
		)

		require.NoError(t, err)
		assert.Equal(t, user.StatusLimited, u.Status())
		assert.Equal(t, kernel.MoneyFromUnits(70), u.Available())
		assert.InDelta(t, 4.2, u.Rating(), 1e-9)
		assert.Equal(t, int64(200), u.ExtraCommissionBP())
		require.NotNil(t, u.BlockedUntil())
	})

	t.Run("should fail when frozen exceeds balance", func(t *testing.T) {
		_, err := user.RestoreUser(
			kernel.NewUUID(), user.RoleSeller, user.StatusActive,
			kernel.MoneyFromUnits(10), kernel.MoneyFromUnits(20),
			5.0, nil, 0,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestUser_Money(t *testing.T) {
	newSeller := func(t *testing.T) *user.User {
		t.Helper()
		u, err := user.NewUser(kernel.NewUUID(), user.RoleSeller)
		require.NoError(t, err)
		return u
	}

	t.Run("credit increases balance", func(t *testing.T) {
		u := newSeller(t)

		require.NoError(t, u.Credit(kernel.MoneyFromUnits(100)))

		assert.Equal(t, kernel.MoneyFromUnits(100), u.Balance())
		assert.Equal(t, kernel.MoneyFromUnits(100), u.Available())
	})

	t.Run("credit rejects non positive amount", func(t *testing.T) {
		u := newSeller(t)

		require.Error(t, u.Credit(kernel.Money(0)))
		require.Error(t, u.Credit(kernel.MoneyFromUnits(-1)))
	})

	t.Run("debit fails on insufficient funds", func(t *testing.T) {
		u := newSeller(t)
		require.NoError(t, u.Credit(kernel.MoneyFromUnits(10)))

		err := u.Debit(kernel.MoneyFromUnits(11))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, kernel.MoneyFromUnits(10), u.Balance())
	})

	t.Run("freeze reserves available funds only", func(t *testing.T) {
		u := newSeller(t)
		require.NoError(t, u.Credit(kernel.MoneyFromUnits(100)))

		require.NoError(t, u.Freeze(kernel.MoneyFromUnits(60)))

		assert.Equal(t, kernel.MoneyFromUnits(60), u.FrozenBalance())
		assert.Equal(t, kernel.MoneyFromUnits(40), u.Available())

		err := u.Freeze(kernel.MoneyFromUnits(41))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
	})

	t.Run("unfreeze caps at the frozen amount", func(t *testing.T) {
		u := newSeller(t)
		require.NoError(t, u.Credit(kernel.MoneyFromUnits(100)))
		require.NoError(t, u.Freeze(kernel.MoneyFromUnits(25)))

		released := u.Unfreeze(kernel.MoneyFromUnits(100))

		assert.Equal(t, kernel.MoneyFromUnits(25), released)
		assert.Equal(t, kernel.Money(0), u.FrozenBalance())
	})

	t.Run("unfreeze then debit keeps invariants through a settlement", func(t *testing.T) {
		u := newSeller(t)
		require.NoError(t, u.Credit(kernel.MoneyFromUnits(100)))
		require.NoError(t, u.Freeze(kernel.MoneyFromUnits(25)))

		u.Unfreeze(kernel.MoneyFromUnits(25))
		require.NoError(t, u.Debit(kernel.MoneyFromUnits(25)))

		assert.Equal(t, kernel.MoneyFromUnits(75), u.Balance())
		assert.Equal(t, kernel.Money(0), u.FrozenBalance())
	})
}

func TestUser_Limit(t *testing.T) {
	t.Run("limit and clear", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), user.RoleCourier)
		require.NoError(t, err)
		until := time.Now().Add(24 * time.Hour)

		u.Limit(until)
		assert.Equal(t, user.StatusLimited, u.Status())
		require.NotNil(t, u.BlockedUntil())
		assert.True(t, u.BlockedUntil().Equal(until))

		u.ClearLimit()
		assert.Equal(t, user.StatusActive, u.Status())
		assert.Nil(t, u.BlockedUntil())
	})
}

func TestUser_Rating(t *testing.T) {
	t.Run("should reject rating out of range", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), user.RoleCourier)
		require.NoError(t, err)

		require.Error(t, u.SetRating(0.9))
		require.Error(t, u.SetRating(5.1))
		require.NoError(t, u.SetRating(3.37))
		assert.InDelta(t, 3.37, u.Rating(), 1e-9)
	})
}

func TestRoleAndStatusParsing(t *testing.T) {
	t.Run("role round trip", func(t *testing.T) {
		r, err := user.RoleFromString("courier")
		require.NoError(t, err)
		assert.True(t, r.IsCourier())

		_, err = user.RoleFromString("admin")
		require.Error(t, err)
	})

	t.Run("status round trip", func(t *testing.T) {
		s, err := user.StatusFromString("limited")
		require.NoError(t, err)
		assert.Equal(t, user.StatusLimited, s)
		assert.False(t, s.IsActive())

		_, err = user.StatusFromString("frozen")
		require.Error(t, err)
	})
}
