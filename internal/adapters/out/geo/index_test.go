package geo

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPoint(t *testing.T, lat, long float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, long)
	require.NoError(t, err)
	return p
}

func TestIndex(t *testing.T) {
	t.Run("should store and locate a position", func(t *testing.T) {
		idx := NewIndex(DefaultTTL)
		id := kernel.NewUUID()
		p := mustPoint(t, 55.75, 37.62)

		require.NoError(t, idx.Update(t.Context(), id, p))

		got, err := idx.Locate(t.Context(), id)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("should report unknown couriers as unavailable", func(t *testing.T) {
		idx := NewIndex(DefaultTTL)

		_, err := idx.Locate(t.Context(), kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrLocationUnavailable)
	})

	t.Run("should expire stale positions", func(t *testing.T) {
		idx := NewIndex(time.Minute)
		now := time.Now()
		idx.now = func() time.Time { return now }

		id := kernel.NewUUID()
		require.NoError(t, idx.Update(t.Context(), id, mustPoint(t, 55.75, 37.62)))

		now = now.Add(2 * time.Minute)
		_, err := idx.Locate(t.Context(), id)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrLocationUnavailable)
	})

	t.Run("should refresh the TTL on every report", func(t *testing.T) {
		idx := NewIndex(time.Minute)
		now := time.Now()
		idx.now = func() time.Time { return now }

		id := kernel.NewUUID()
		p := mustPoint(t, 55.75, 37.62)
		require.NoError(t, idx.Update(t.Context(), id, p))

		now = now.Add(45 * time.Second)
		require.NoError(t, idx.Update(t.Context(), id, p))

		now = now.Add(45 * time.Second)
		_, err := idx.Locate(t.Context(), id)
		require.NoError(t, err)
	})

	t.Run("should find couriers nearest first within radius", func(t *testing.T) {
		idx := NewIndex(DefaultTTL)
		origin := mustPoint(t, 55.75, 37.62)

		nearID := kernel.NewUUID()
		farID := kernel.NewUUID()
		require.NoError(t, idx.Update(t.Context(), nearID, mustPoint(t, 55.751, 37.621)))
		require.NoError(t, idx.Update(t.Context(), farID, mustPoint(t, 55.77, 37.66)))
		// Saint Petersburg, far outside any sane radius
		require.NoError(t, idx.Update(t.Context(), kernel.NewUUID(), mustPoint(t, 59.93, 30.33)))

		found, err := idx.FindNearby(t.Context(), origin, 5.0, 0)

		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.True(t, found[0].CourierID.IsEqual(nearID))
		assert.True(t, found[1].CourierID.IsEqual(farID))
		assert.Less(t, found[0].DistanceKm, found[1].DistanceKm)
	})

	t.Run("should apply the limit after sorting", func(t *testing.T) {
		idx := NewIndex(DefaultTTL)
		origin := mustPoint(t, 55.75, 37.62)

		nearID := kernel.NewUUID()
		require.NoError(t, idx.Update(t.Context(), nearID, mustPoint(t, 55.7501, 37.6201)))
		require.NoError(t, idx.Update(t.Context(), kernel.NewUUID(), mustPoint(t, 55.76, 37.63)))

		found, err := idx.FindNearby(t.Context(), origin, 0, 1)

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.True(t, found[0].CourierID.IsEqual(nearID))
	})

	t.Run("should remove a courier on request", func(t *testing.T) {
		idx := NewIndex(DefaultTTL)
		id := kernel.NewUUID()
		require.NoError(t, idx.Update(t.Context(), id, mustPoint(t, 55.75, 37.62)))

		require.NoError(t, idx.Remove(t.Context(), id))

		_, err := idx.Locate(t.Context(), id)
		assert.ErrorIs(t, err, errs.ErrLocationUnavailable)
	})
}
