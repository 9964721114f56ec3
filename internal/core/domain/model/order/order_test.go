package order_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoint(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(55.75, 37.62)
	require.NoError(t, err)
	return p
}

func testItems(t *testing.T, n int) []*order.Item {
	t.Helper()
	items := make([]*order.Item, 0, n)
	for i := 0; i < n; i++ {
		it, err := order.NewItem(kernel.NewUUID(), "parcel", "Lenina 1", testPoint(t))
		require.NoError(t, err)
		items = append(items, it)
	}
	return items
}

func newTestOrder(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()
	sellerID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), sellerID, "Tverskaya 7", testPoint(t),
		kernel.MoneyFromUnits(20), order.FlatCommission,
		testItems(t, 2), time.Now(),
	)
	require.NoError(t, err)
	return o, sellerID
}

// drives a fresh order to the given status through the public API.
func orderAt(t *testing.T, status order.Status) (*order.Order, kernel.UUID, kernel.UUID) {
	t.Helper()
	o, sellerID := newTestOrder(t)
	courierID := kernel.NewUUID()
	now := time.Now()

	steps := []func() error{
		func() error { return o.PlaceInPool() },
		func() error { return o.Accept(courierID) },
		func() error { return o.Advance(courierID, order.StatusOnWayShop, now) },
		func() error { return o.Advance(courierID, order.StatusAtShop, now) },
		func() error { return o.Advance(courierID, order.StatusOnWayClient, now) },
		func() error { return o.Advance(courierID, order.StatusDelivered, now) },
		func() error { return o.Confirm(sellerID) },
		func() error { return o.Complete() },
	}
	for _, step := range steps {
		if o.Status() == status {
			return o, sellerID, courierID
		}
		require.NoError(t, step())
	}
	require.Equal(t, status, o.Status())
	return o, sellerID, courierID
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in created status", func(t *testing.T) {
		o, _ := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusCreated, o.Status())
		assert.Nil(t, o.CourierID())
		assert.Equal(t, kernel.MoneyFromUnits(25), o.TotalCharge())
		assert.Equal(t, int64(1), o.Version())
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should fail with delivery cost below minimum", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), "Tverskaya 7", testPoint(t),
			kernel.MoneyFromCents(999), order.FlatCommission,
			testItems(t, 1), time.Now(),
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail without items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), "Tverskaya 7", testPoint(t),
			kernel.MoneyFromUnits(20), order.FlatCommission,
			nil, time.Now(),
		)

		require.Error(t, err)
	})

	t.Run("should fail with too many items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), "Tverskaya 7", testPoint(t),
			kernel.MoneyFromUnits(20), order.FlatCommission,
			testItems(t, order.MaxItems+1), time.Now(),
		)

		require.Error(t, err)
	})
}

func TestOrder_Accept(t *testing.T) {
	t.Run("should assign courier to waiting order", func(t *testing.T) {
		o, _ := newTestOrder(t)
		require.NoError(t, o.PlaceInPool())
		courierID := kernel.NewUUID()

		require.NoError(t, o.Accept(courierID))

		assert.Equal(t, order.StatusAccepted, o.Status())
		require.NotNil(t, o.CourierID())
		assert.True(t, o.CourierID().IsEqual(courierID))
	})

	t.Run("should report not available when order is not waiting", func(t *testing.T) {
		o, _ := newTestOrder(t)

		err := o.Accept(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOrderNotAvailable)
	})

	t.Run("second acceptance loses", func(t *testing.T) {
		o, _, _ := orderAt(t, order.StatusAccepted)

		err := o.Accept(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOrderNotAvailable)
	})
}

func TestOrder_Advance(t *testing.T) {
	t.Run("walks the courier steps and bumps the version", func(t *testing.T) {
		o, _, courierID := orderAt(t, order.StatusAccepted)
		now := time.Now()
		v := o.Version()

		require.NoError(t, o.Advance(courierID, order.StatusOnWayShop, now))
		require.NoError(t, o.Advance(courierID, order.StatusAtShop, now))

		assert.Equal(t, order.StatusAtShop, o.Status())
		assert.Equal(t, v+2, o.Version())
	})

	t.Run("leaving the shop arms the delivery timer", func(t *testing.T) {
		o, _, courierID := orderAt(t, order.StatusAtShop)
		now := time.Now()

		require.NoError(t, o.Advance(courierID, order.StatusOnWayClient, now))

		require.NotNil(t, o.DeliveryDeadline())
		assert.True(t, o.DeliveryDeadline().Equal(now.Add(order.DeliveryTimeout)))
	})

	t.Run("handover arms the auto confirm timer and marks items", func(t *testing.T) {
		o, _, courierID := orderAt(t, order.StatusOnWayClient)
		now := time.Now()

		require.NoError(t, o.Advance(courierID, order.StatusDelivered, now))

		require.NotNil(t, o.ConfirmDeadline())
		assert.True(t, o.ConfirmDeadline().Equal(now.Add(order.ConfirmTimeout)))
		for _, it := range o.Items() {
			assert.True(t, it.IsDelivered())
		}
	})

	t.Run("should forbid advancing someone else's order", func(t *testing.T) {
		o, _, _ := orderAt(t, order.StatusAccepted)

		err := o.Advance(kernel.NewUUID(), order.StatusOnWayShop, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should reject skipping a step", func(t *testing.T) {
		o, _, courierID := orderAt(t, order.StatusAccepted)

		err := o.Advance(courierID, order.StatusAtShop, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_CancelBySeller(t *testing.T) {
	t.Run("cancels a waiting order without compensation", func(t *testing.T) {
		o, sellerID, _ := orderAt(t, order.StatusWaiting)

		atShop, err := o.CancelBySeller(sellerID, "changed my mind")

		require.NoError(t, err)
		assert.False(t, atShop)
		assert.Equal(t, order.StatusCancelledSeller, o.Status())
		assert.Equal(t, "changed my mind", o.CancelReason())
	})

	t.Run("cancelling at the shop flags compensation", func(t *testing.T) {
		o, sellerID, _ := orderAt(t, order.StatusAtShop)

		atShop, err := o.CancelBySeller(sellerID, "out of stock")

		require.NoError(t, err)
		assert.True(t, atShop)
	})

	t.Run("too late once the courier left the shop", func(t *testing.T) {
		o, sellerID, _ := orderAt(t, order.StatusOnWayClient)

		_, err := o.CancelBySeller(sellerID, "too slow")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should forbid cancelling someone else's order", func(t *testing.T) {
		o, _, _ := orderAt(t, order.StatusWaiting)

		_, err := o.CancelBySeller(kernel.NewUUID(), "not mine")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestOrder_CancelByCourier(t *testing.T) {
	t.Run("returns the order to the pool and detaches the courier", func(t *testing.T) {
		o, _, courierID := orderAt(t, order.StatusOnWayShop)

		require.NoError(t, o.CancelByCourier(courierID))

		assert.Equal(t, order.StatusWaiting, o.Status())
		assert.Nil(t, o.CourierID())
	})

	t.Run("order can be re-accepted after courier cancel", func(t *testing.T) {
		o, _, courierID := orderAt(t, order.StatusAccepted)
		require.NoError(t, o.CancelByCourier(courierID))

		other := kernel.NewUUID()
		require.NoError(t, o.Accept(other))

		require.NotNil(t, o.CourierID())
		assert.True(t, o.CourierID().IsEqual(other))
	})

	t.Run("too late at the shop", func(t *testing.T) {
		o, _, courierID := orderAt(t, order.StatusAtShop)

		err := o.CancelByCourier(courierID)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_ConfirmAndComplete(t *testing.T) {
	t.Run("seller confirms a delivered order", func(t *testing.T) {
		o, sellerID, _ := orderAt(t, order.StatusDelivered)

		require.NoError(t, o.Confirm(sellerID))

		assert.Equal(t, order.StatusConfirmed, o.Status())
	})

	t.Run("auto confirm loses the race to a manual confirm", func(t *testing.T) {
		o, sellerID, _ := orderAt(t, order.StatusDelivered)
		require.NoError(t, o.Confirm(sellerID))

		err := o.AutoConfirm()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("completes after confirmation", func(t *testing.T) {
		o, _, _ := orderAt(t, order.StatusConfirmed)

		require.NoError(t, o.Complete())

		assert.True(t, o.IsTerminal())
	})
}

func TestOrder_Expire(t *testing.T) {
	t.Run("expires an order on the way to the client", func(t *testing.T) {
		o, _, _ := orderAt(t, order.StatusOnWayClient)

		require.NoError(t, o.Expire())

		assert.Equal(t, order.StatusExpired, o.Status())
		assert.True(t, o.IsTerminal())
	})

	t.Run("cannot expire a delivered order", func(t *testing.T) {
		o, _, _ := orderAt(t, order.StatusDelivered)

		err := o.Expire()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore all fields", func(t *testing.T) {
		courierID := kernel.NewUUID()
		deadline := time.Now().Add(time.Hour)
		created := time.Now().Add(-time.Hour)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &courierID,
			"Tverskaya 7", testPoint(t), order.StatusOnWayClient,
			kernel.MoneyFromUnits(15), kernel.MoneyFromUnits(5),
			"", &deadline, nil, created, 7, testItems(t, 1),
		)

		require.NoError(t, err)
		assert.Equal(t, order.StatusOnWayClient, o.Status())
		assert.Equal(t, int64(7), o.Version())
		require.NotNil(t, o.DeliveryDeadline())
		assert.True(t, o.CreatedAt().Equal(created))
	})

	t.Run("should fail with zero status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			"Tverskaya 7", testPoint(t), order.Status{},
			kernel.MoneyFromUnits(15), kernel.MoneyFromUnits(5),
			"", nil, nil, time.Now(), 1, testItems(t, 1),
		)

		require.Error(t, err)
	})
}
