package courier

import (
	"errors"
	"math"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// Reputation tuning. The reputation policy in the services package drives
// these transitions, the profile only stores and applies them.
const (
	// DefaultRatingScore is the internal 0-100 score a new courier starts with.
	DefaultRatingScore = 50
	MinRatingScore     = 0
	MaxRatingScore     = 100

	// DefaultSearchRadiusKm is the initial order search radius.
	DefaultSearchRadiusKm = 3.0
	// MinSearchRadiusKm is the floor the radius never shrinks below.
	MinSearchRadiusKm = 1.0
	// RadiusShrinkStepKm is subtracted from the radius once the courier
	// accumulates RadiusShrinkCancelCount lifetime cancellations.
	RadiusShrinkStepKm      = 0.5
	RadiusShrinkCancelCount = 10

	// LateScorePenalty is subtracted from the score on every
	// LatePenaltyEvery-th late delivery.
	LateScorePenalty = 5
	LatePenaltyEvery = 3

	// ConsecutiveCancelLimit triggers a temporary account limitation.
	ConsecutiveCancelLimit = 5
)

// ErrProfileIsNotConstructed is returned when using an improperly initialized Profile.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile constructor")

// Profile is the courier-side aggregate: transport, reputation counters and
// the personal order search radius. It shares its identifier with the owning
// user aggregate.
type Profile struct {
	courierID          kernel.UUID
	transport          Transport
	ratingScore        int
	lateCount          int
	cancelCount        int
	consecutiveCancels int
	searchRadiusKm     float64

	guard guard.ConstructorGuard
}

// NewProfile creates a courier profile with the default score and radius.
func NewProfile(courierID kernel.UUID, transport Transport) (*Profile, error) {
	p := &Profile{
		ratingScore:    DefaultRatingScore,
		searchRadiusKm: DefaultSearchRadiusKm,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setCourierID(courierID),
		p.setTransport(transport),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProfile reconstructs a courier profile from persistent storage.
func RestoreProfile(
	courierID kernel.UUID,
	transport Transport,
	ratingScore int,
	lateCount int,
	cancelCount int,
	consecutiveCancels int,
	searchRadiusKm float64,
) (*Profile, error) {
	p := &Profile{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setCourierID(courierID),
		p.setTransport(transport),
		p.setRatingScore(ratingScore),
		p.setCounters(lateCount, cancelCount, consecutiveCancels),
		p.setSearchRadiusKm(searchRadiusKm),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Profile was constructed through NewProfile or RestoreProfile.
func (p *Profile) Validate() error {
	if p == nil || p.guard.Validate(ErrProfileIsNotConstructed) != nil {
		return ErrProfileIsNotConstructed
	}
	return nil
}

// CourierID returns the identifier of the owning user.
func (p *Profile) CourierID() kernel.UUID {
	return p.courierID
}

// Transport returns the courier's transport.
func (p *Profile) Transport() Transport {
	return p.transport
}

// RatingScore returns the internal 0-100 reputation score.
func (p *Profile) RatingScore() int {
	return p.ratingScore
}

// LateCount returns the lifetime count of late deliveries.
func (p *Profile) LateCount() int {
	return p.lateCount
}

// CancelCount returns the lifetime count of cancelled acceptances.
func (p *Profile) CancelCount() int {
	return p.cancelCount
}

// ConsecutiveCancels returns the current streak of cancellations without a
// completed delivery in between.
func (p *Profile) ConsecutiveCancels() int {
	return p.consecutiveCancels
}

// SearchRadiusKm returns the personal order search radius.
func (p *Profile) SearchRadiusKm() float64 {
	return p.searchRadiusKm
}

// RegisterLate records a late delivery. Every LatePenaltyEvery-th one costs
// LateScorePenalty points of the rating score.
func (p *Profile) RegisterLate() {
	p.lateCount++
	if p.lateCount%LatePenaltyEvery == 0 {
		p.ratingScore = clampScore(p.ratingScore - LateScorePenalty)
	}
}

// RegisterCancel records a cancelled acceptance and reports whether the
// consecutive-cancel streak reached the limitation threshold. When it does,
// the streak resets so the next limitation needs a fresh run. The lifetime
// counter also shrinks the search radius once it reaches
// RadiusShrinkCancelCount, never below MinSearchRadiusKm.
func (p *Profile) RegisterCancel() (limitReached bool) {
	p.cancelCount++
	p.consecutiveCancels++

	if p.consecutiveCancels >= ConsecutiveCancelLimit {
		p.consecutiveCancels = 0
		limitReached = true
	}
	if p.cancelCount >= RadiusShrinkCancelCount {
		p.searchRadiusKm = math.Max(MinSearchRadiusKm, p.searchRadiusKm-RadiusShrinkStepKm)
	}

	return limitReached
}

// ResetConsecutiveCancels clears the streak after a successful delivery.
func (p *Profile) ResetConsecutiveCancels() {
	p.consecutiveCancels = 0
}

// SetRatingScore replaces the internal reputation score with a freshly
// computed value.
func (p *Profile) SetRatingScore(score int) error {
	return p.setRatingScore(score)
}

func (p *Profile) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.courierID = id
	return nil
}

func (p *Profile) setTransport(transport Transport) error {
	if err := transport.Validate(); err != nil {
		return err
	}
	p.transport = transport
	return nil
}

func (p *Profile) setRatingScore(score int) error {
	if score < MinRatingScore || score > MaxRatingScore {
		return errs.NewValueIsOutOfRangeError("ratingScore", score, MinRatingScore, MaxRatingScore)
	}
	p.ratingScore = score
	return nil
}

func (p *Profile) setCounters(late, cancels, consecutive int) error {
	if late < 0 {
		return errs.NewValueIsInvalidError("lateCount")
	}
	if cancels < 0 {
		return errs.NewValueIsInvalidError("cancelCount")
	}
	if consecutive < 0 {
		return errs.NewValueIsInvalidError("consecutiveCancels")
	}

	p.lateCount = late
	p.cancelCount = cancels
	p.consecutiveCancels = consecutive
	return nil
}

func (p *Profile) setSearchRadiusKm(radius float64) error {
	if radius < MinSearchRadiusKm {
		return errs.NewValueIsOutOfRangeError("searchRadiusKm", radius, MinSearchRadiusKm, DefaultSearchRadiusKm)
	}
	p.searchRadiusKm = radius
	return nil
}

func clampScore(score int) int {
	if score < MinRatingScore {
		return MinRatingScore
	}
	if score > MaxRatingScore {
		return MaxRatingScore
	}
	return score
}
