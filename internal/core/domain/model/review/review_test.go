package review_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/review"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	t.Run("should create review", func(t *testing.T) {
		r, err := review.NewReview(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			4, "fast and polite", time.Now(),
		)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, 4, r.Stars())
		assert.Equal(t, "fast and polite", r.Comment())
	})

	t.Run("should fail with stars out of range", func(t *testing.T) {
		for _, stars := range []int{0, 6, -1} {
			_, err := review.NewReview(
				kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				stars, "", time.Now(),
			)
			require.Error(t, err)
		}
	})

	t.Run("should fail when reviewing yourself", func(t *testing.T) {
		self := kernel.NewUUID()

		_, err := review.NewReview(
			kernel.NewUUID(), kernel.NewUUID(), self, self,
			5, "", time.Now(),
		)

		require.Error(t, err)
	})
}
