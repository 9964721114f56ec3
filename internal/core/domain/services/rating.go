package services

import "math"

// Courier score formula parameters: one star maps to the base minus the
// span, five stars to the base plus the span, before the late penalty.
const (
	courierScoreBase        = 50.0
	courierScoreStarStep    = 12.5
	courierScoreLatePenalty = 5
	courierScoreLateEvery   = 3
)

// RatingCalculator derives visible ratings and the internal courier score
// from accumulated reviews.
type RatingCalculator struct{}

// NewRatingCalculator creates the rating math.
func NewRatingCalculator() RatingCalculator {
	return RatingCalculator{}
}

// MeanStars returns the average of the given star values rounded to two
// decimal places. Returns 0 for an empty slice; callers keep the previous
// rating in that case.
func (c RatingCalculator) MeanStars(stars []int) float64 {
	if len(stars) == 0 {
		return 0
	}

	sum := 0
	for _, s := range stars {
		sum += s
	}
	mean := float64(sum) / float64(len(stars))
	return math.Round(mean*100) / 100
}

// CourierScore maps the average star rating onto the internal 0-100 scale
// and subtracts the accumulated late penalties.
func (c RatingCalculator) CourierScore(avgStars float64, lateCount int) int {
	score := int(math.Round(courierScoreBase + (avgStars-1)*courierScoreStarStep))
	score -= courierScoreLatePenalty * (lateCount / courierScoreLateEvery)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
