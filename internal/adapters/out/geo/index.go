// Package geo provides the in-memory courier position index. Positions are
// ephemeral advisory data: they live in process memory, expire after a TTL,
// and are never persisted. Losing them on restart is acceptable because
// couriers re-report on a short interval.
package geo

import (
	"context"
	"sort"
	"sync"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// DefaultTTL is how long a reported position stays usable. A courier that
// stops reporting drops out of matching after this long.
const DefaultTTL = 120 * time.Second

type entry struct {
	point      kernel.GeoPoint
	reportedAt time.Time
}

// Index implements ports.GeoIndex with a TTL map guarded by a read-write
// mutex. Expired entries are dropped lazily on read.
type Index struct {
	mu      sync.RWMutex
	entries map[kernel.UUID]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewIndex creates an index with the given TTL. A non-positive TTL falls
// back to DefaultTTL.
func NewIndex(ttl time.Duration) *Index {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Index{
		entries: make(map[kernel.UUID]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Update stores the courier's current position, refreshing the TTL.
func (idx *Index) Update(_ context.Context, courierID kernel.UUID, point kernel.GeoPoint) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := point.Validate(); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[courierID] = entry{point: point, reportedAt: idx.now()}
	return nil
}

// Locate returns the courier's last known position, or LocationUnavailable
// if the courier never reported or the report expired.
func (idx *Index) Locate(_ context.Context, courierID kernel.UUID) (kernel.GeoPoint, error) {
	if err := courierID.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	idx.mu.RLock()
	e, ok := idx.entries[courierID]
	idx.mu.RUnlock()

	if !ok || idx.expired(e) {
		idx.drop(courierID)
		return kernel.GeoPoint{}, errs.NewLocationUnavailableError(courierID)
	}
	return e.point, nil
}

// FindNearby returns couriers with a live position sorted by distance from
// the given point, nearest first. A non-positive radius disables the
// distance gate; a non-positive limit returns everyone.
func (idx *Index) FindNearby(
	_ context.Context,
	point kernel.GeoPoint,
	radiusKm float64,
	limit int,
) ([]ports.CourierLocation, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	idx.mu.RLock()
	candidates := make([]ports.CourierLocation, 0, len(idx.entries))
	var stale []kernel.UUID
	for id, e := range idx.entries {
		if idx.expired(e) {
			stale = append(stale, id)
			continue
		}
		d, err := point.DistanceKm(e.point)
		if err != nil {
			idx.mu.RUnlock()
			return nil, err
		}
		if radiusKm > 0 && d > radiusKm {
			continue
		}
		candidates = append(candidates, ports.CourierLocation{
			CourierID:  id,
			Point:      e.point,
			DistanceKm: d,
		})
	}
	idx.mu.RUnlock()

	for _, id := range stale {
		idx.drop(id)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// Remove drops the courier from the index, for an explicit going-offline
// report. Removing an absent courier is a no-op.
func (idx *Index) Remove(_ context.Context, courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	idx.drop(courierID)
	return nil
}

func (idx *Index) expired(e entry) bool {
	return idx.now().Sub(e.reportedAt) > idx.ttl
}

func (idx *Index) drop(courierID kernel.UUID) {
	idx.mu.Lock()
	delete(idx.entries, courierID)
	idx.mu.Unlock()
}
