package services_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/user"
	"lastmile/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourierWithProfile(t *testing.T) (*user.User, *courier.Profile) {
	t.Helper()
	id := kernel.NewUUID()
	u, err := user.NewUser(id, user.RoleCourier)
	require.NoError(t, err)
	p, err := courier.NewProfile(id, courier.TransportBike)
	require.NoError(t, err)
	return u, p
}

func TestReputationPolicy_OnCourierCancel(t *testing.T) {
	policy := services.NewReputationPolicy()

	t.Run("fifth consecutive cancel limits the account for a day", func(t *testing.T) {
		u, p := newCourierWithProfile(t)
		now := time.Now()

		for i := 0; i < courier.ConsecutiveCancelLimit; i++ {
			require.NoError(t, policy.OnCourierCancel(u, p, now))
		}

		assert.Equal(t, user.StatusLimited, u.Status())
		require.NotNil(t, u.BlockedUntil())
		assert.True(t, u.BlockedUntil().Equal(now.Add(services.CancelLimitDuration)))
	})

	t.Run("a delivery in between keeps the account active", func(t *testing.T) {
		u, p := newCourierWithProfile(t)

		for i := 0; i < courier.ConsecutiveCancelLimit-1; i++ {
			require.NoError(t, policy.OnCourierCancel(u, p, time.Now()))
		}
		require.NoError(t, policy.OnSuccessfulDelivery(p))
		require.NoError(t, policy.OnCourierCancel(u, p, time.Now()))

		assert.Equal(t, user.StatusActive, u.Status())
	})
}

func TestReputationPolicy_IsCourierRestricted(t *testing.T) {
	policy := services.NewReputationPolicy()

	t.Run("active courier is not restricted", func(t *testing.T) {
		u, _ := newCourierWithProfile(t)

		assert.False(t, policy.IsCourierRestricted(u, time.Now()))
	})

	t.Run("limited courier is restricted until the deadline", func(t *testing.T) {
		u, _ := newCourierWithProfile(t)
		now := time.Now()
		u.Limit(now.Add(time.Hour))

		assert.True(t, policy.IsCourierRestricted(u, now))
		assert.Equal(t, user.StatusLimited, u.Status())
	})

	t.Run("expired limitation is lifted lazily", func(t *testing.T) {
		u, _ := newCourierWithProfile(t)
		now := time.Now()
		u.Limit(now.Add(-time.Minute))

		assert.False(t, policy.IsCourierRestricted(u, now))
		assert.Equal(t, user.StatusActive, u.Status())
		assert.Nil(t, u.BlockedUntil())
	})

	t.Run("blocked courier stays restricted", func(t *testing.T) {
		u, _ := newCourierWithProfile(t)
		require.NoError(t, u.SetStatus(user.StatusBlocked))

		assert.True(t, policy.IsCourierRestricted(u, time.Now()))
	})
}

func TestReputationPolicy_SellerSurchargeBP(t *testing.T) {
	policy := services.NewReputationPolicy()

	tests := []struct {
		cancelled int
		want      int64
	}{
		{0, 0},
		{4, 0},
		{5, services.SellerSurchargeLowBP},
		{9, services.SellerSurchargeLowBP},
		{10, services.SellerSurchargeHighBP},
		{25, services.SellerSurchargeHighBP},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, policy.SellerSurchargeBP(tt.cancelled))
	}
}
