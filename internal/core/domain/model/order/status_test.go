package order_test

import (
	"testing"

	"lastmile/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{"created to waiting", order.StatusCreated, order.StatusWaiting, true},
		{"created to cancelled by seller", order.StatusCreated, order.StatusCancelledSeller, true},
		{"created skips waiting", order.StatusCreated, order.StatusAccepted, false},
		{"waiting to accepted", order.StatusWaiting, order.StatusAccepted, true},
		{"accepted back to waiting", order.StatusAccepted, order.StatusWaiting, true},
		{"on way to shop back to waiting", order.StatusOnWayShop, order.StatusWaiting, true},
		{"at shop cannot return to waiting", order.StatusAtShop, order.StatusWaiting, false},
		{"at shop to on way to client", order.StatusAtShop, order.StatusOnWayClient, true},
		{"at shop still seller cancellable", order.StatusAtShop, order.StatusCancelledSeller, true},
		{"on way to client not seller cancellable", order.StatusOnWayClient, order.StatusCancelledSeller, false},
		{"on way to client to delivered", order.StatusOnWayClient, order.StatusDelivered, true},
		{"on way to client to expired", order.StatusOnWayClient, order.StatusExpired, true},
		{"delivered to confirmed", order.StatusDelivered, order.StatusConfirmed, true},
		{"confirmed to completed", order.StatusConfirmed, order.StatusCompleted, true},
		{"completed is terminal", order.StatusCompleted, order.StatusWaiting, false},
		{"expired is terminal", order.StatusExpired, order.StatusWaiting, false},
		{"cancelled is terminal", order.StatusCancelledSeller, order.StatusWaiting, false},
		{"no backward step", order.StatusDelivered, order.StatusOnWayClient, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.StatusCompleted.IsTerminal())
	assert.True(t, order.StatusCancelledSeller.IsTerminal())
	assert.True(t, order.StatusExpired.IsTerminal())

	assert.False(t, order.StatusCreated.IsTerminal())
	assert.False(t, order.StatusWaiting.IsTerminal())
	assert.False(t, order.StatusDelivered.IsTerminal())

	var zero order.Status
	assert.False(t, zero.IsTerminal())
}

func TestStatus_NextCourierStep(t *testing.T) {
	next, ok := order.StatusAccepted.NextCourierStep()
	require.True(t, ok)
	assert.Equal(t, order.StatusOnWayShop, next)

	next, ok = order.StatusOnWayClient.NextCourierStep()
	require.True(t, ok)
	assert.Equal(t, order.StatusDelivered, next)

	_, ok = order.StatusWaiting.NextCourierStep()
	assert.False(t, ok)

	_, ok = order.StatusDelivered.NextCourierStep()
	assert.False(t, ok)
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every status", func(t *testing.T) {
		all := []order.Status{
			order.StatusCreated, order.StatusWaiting, order.StatusAccepted,
			order.StatusOnWayShop, order.StatusAtShop, order.StatusOnWayClient,
			order.StatusDelivered, order.StatusConfirmed, order.StatusCompleted,
			order.StatusCancelledSeller, order.StatusExpired,
		}

		for _, s := range all {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown name", func(t *testing.T) {
		_, err := order.StatusFromString("teleported")

		require.Error(t, err)
	})
}
