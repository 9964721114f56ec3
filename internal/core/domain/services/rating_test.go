package services_test

import (
	"testing"

	"lastmile/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestRatingCalculator_MeanStars(t *testing.T) {
	calc := services.NewRatingCalculator()

	t.Run("rounds to two decimal places", func(t *testing.T) {
		assert.InDelta(t, 4.33, calc.MeanStars([]int{5, 4, 4}), 1e-9)
		assert.InDelta(t, 3.67, calc.MeanStars([]int{3, 4, 4}), 1e-9)
		assert.InDelta(t, 5.0, calc.MeanStars([]int{5}), 1e-9)
	})

	t.Run("empty input yields zero", func(t *testing.T) {
		assert.Zero(t, calc.MeanStars(nil))
	})
}

func TestRatingCalculator_CourierScore(t *testing.T) {
	calc := services.NewRatingCalculator()

	t.Run("maps the star scale onto 0-100", func(t *testing.T) {
		assert.Equal(t, 50, calc.CourierScore(1, 0))
		assert.Equal(t, 100, calc.CourierScore(5, 0))
		assert.Equal(t, 75, calc.CourierScore(3, 0))
		// 50 + 3.33*12.5 = 91.625 -> 92
		assert.Equal(t, 92, calc.CourierScore(4.33, 0))
	})

	t.Run("subtracts five points per three late deliveries", func(t *testing.T) {
		assert.Equal(t, 100, calc.CourierScore(5, 2))
		assert.Equal(t, 95, calc.CourierScore(5, 3))
		assert.Equal(t, 90, calc.CourierScore(5, 7))
	})

	t.Run("clamps at the bounds", func(t *testing.T) {
		assert.Equal(t, 0, calc.CourierScore(1, 300))
	})
}
