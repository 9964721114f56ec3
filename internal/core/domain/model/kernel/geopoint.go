package kernel

import (
	"errors"
	"fmt"
	"math"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	// GeoPointMinLat and GeoPointMaxLat bound valid latitudes in degrees.
	GeoPointMinLat = -90.0
	GeoPointMaxLat = 90.0
	// GeoPointMinLong and GeoPointMaxLong bound valid longitudes in degrees.
	GeoPointMinLong = -180.0
	GeoPointMaxLong = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when validating a zero-value GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding validated WGS84 coordinates.
// It backs courier positions and order delivery addresses; all proximity
// decisions in the system go through DistanceKm.
//
// The zero value is invalid and fails Validate; use NewGeoPoint.
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	long  float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude in degrees.
// Returns a validation error if either coordinate is outside its valid range.
func NewGeoPoint(lat, long float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLong(long)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created through its constructor.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Long returns the longitude in degrees.
func (p GeoPoint) Long() float64 {
	return p.long
}

// String implements fmt.Stringer for logging and debugging.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.long)
}

// DistanceKm computes the great-circle distance to another point in kilometers
// using the haversine formula over the mean Earth radius.
// Both points must be properly constructed.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(p.lat)
	lat2 := toRadians(other.lat)
	dLat := toRadians(other.lat - p.lat)
	dLong := toRadians(other.long - p.long)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLong/2)*math.Sin(dLong/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// setLat sets the latitude with validation.
// Pointer receiver is intentional: private setters keep construction-time
// validation self-encapsulated.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoPointMinLat || lat > GeoPointMaxLat {
		return errs.NewValueIsOutOfRangeError("lat", lat, GeoPointMinLat, GeoPointMaxLat)
	}

	p.lat = lat
	return nil
}

// setLong sets the longitude with validation.
func (p *GeoPoint) setLong(long float64) error {
	if long < GeoPointMinLong || long > GeoPointMaxLong {
		return errs.NewValueIsOutOfRangeError("long", long, GeoPointMinLong, GeoPointMaxLong)
	}

	p.long = long
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
