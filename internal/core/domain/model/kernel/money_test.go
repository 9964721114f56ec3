package kernel_test

import (
	"testing"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	t.Run("constructors", func(t *testing.T) {
		assert.Equal(t, int64(1234), kernel.MoneyFromCents(1234).Cents())
		assert.Equal(t, int64(500), kernel.MoneyFromUnits(5).Cents())
	})

	t.Run("arithmetic", func(t *testing.T) {
		a := kernel.MoneyFromUnits(20)
		b := kernel.MoneyFromUnits(5)

		assert.Equal(t, kernel.MoneyFromUnits(25), a.Add(b))
		assert.Equal(t, kernel.MoneyFromUnits(15), a.Sub(b))
		assert.Equal(t, kernel.MoneyFromCents(-2000), a.Neg())
		assert.True(t, a.Sub(a.Add(b)).IsNegative())
		assert.True(t, a.IsPositive())
	})

	t.Run("percent in basis points rounds half up", func(t *testing.T) {
		// 3% of 100.00 is 3.00
		assert.Equal(t, kernel.MoneyFromCents(300), kernel.MoneyFromUnits(100).PercentBP(300))
		// 1.5% of 200.00 is 3.00
		assert.Equal(t, kernel.MoneyFromCents(300), kernel.MoneyFromUnits(200).PercentBP(150))
		// 1.5% of 33.33 is 0.49995 -> 0.50
		assert.Equal(t, kernel.MoneyFromCents(50), kernel.MoneyFromCents(3333).PercentBP(150))
	})

	t.Run("formatting", func(t *testing.T) {
		assert.Equal(t, "12.05", kernel.MoneyFromCents(1205).String())
		assert.Equal(t, "-0.50", kernel.MoneyFromCents(-50).String())
		assert.InDelta(t, 12.05, kernel.MoneyFromCents(1205).Float64(), 1e-9)
	})
}
