package ledger_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Run("should create deposit entry without order", func(t *testing.T) {
		id := kernel.NewUUID()
		userID := kernel.NewUUID()
		now := time.Now()

		e, err := ledger.NewEntry(id, userID, nil, ledger.EntryTypeDeposit, kernel.MoneyFromUnits(100), "top up", now)

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.True(t, e.UserID().IsEqual(userID))
		assert.Nil(t, e.OrderID())
		assert.Equal(t, ledger.EntryTypeDeposit, e.EntryType())
		assert.Equal(t, kernel.MoneyFromUnits(100), e.Amount())
	})

	t.Run("should create negative payment tied to an order", func(t *testing.T) {
		orderID := kernel.NewUUID()

		e, err := ledger.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), &orderID,
			ledger.EntryTypePayment, kernel.MoneyFromUnits(-20), "delivery payout", time.Now(),
		)

		require.NoError(t, err)
		require.NotNil(t, e.OrderID())
		assert.True(t, e.Amount().IsNegative())
	})

	t.Run("should fail with zero amount", func(t *testing.T) {
		_, err := ledger.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			ledger.EntryTypeDeposit, kernel.Money(0), "", time.Now(),
		)

		require.Error(t, err)
	})

	t.Run("should fail with zero entry type", func(t *testing.T) {
		_, err := ledger.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			ledger.EntryType{}, kernel.MoneyFromUnits(1), "", time.Now(),
		)

		require.Error(t, err)
	})
}

func TestEntryTypeFromString(t *testing.T) {
	t.Run("round trips every type", func(t *testing.T) {
		for _, name := range []string{"deposit", "withdrawal", "freeze", "unfreeze", "commission", "payment"} {
			et, err := ledger.EntryTypeFromString(name)
			require.NoError(t, err)
			assert.Equal(t, name, et.String())
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := ledger.EntryTypeFromString("refund")

		require.Error(t, err)
	})
}
