package commands_test

// In-memory doubles shared by the handler tests. They implement the ports
// faithfully enough to drive full handler flows: the user repository records
// lock acquisition order, the order repository can simulate a lost
// conditional update, and the unit of work tracks its lifecycle.

import (
	"context"
	"sync"
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/ledger"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/review"
	"lastmile/internal/core/domain/model/user"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func geoPoint(t *testing.T, lat, long float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, long)
	require.NoError(t, err)
	return p
}

type fakeUserRepo struct {
	users     map[kernel.UUID]*user.User
	lockOrder []kernel.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[kernel.UUID]*user.User)}
}

func (r *fakeUserRepo) Add(_ context.Context, u *user.User) error {
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("userID", id)
	}
	return u, nil
}

func (r *fakeUserRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	r.lockOrder = append(r.lockOrder, id)
	return r.Get(ctx, id)
}

type fakeProfileRepo struct {
	profiles map[kernel.UUID]*courier.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[kernel.UUID]*courier.Profile)}
}

func (r *fakeProfileRepo) Add(_ context.Context, p *courier.Profile) error {
	r.profiles[p.CourierID()] = p
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *courier.Profile) error {
	r.profiles[p.CourierID()] = p
	return nil
}

func (r *fakeProfileRepo) Get(_ context.Context, id kernel.UUID) (*courier.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courierID", id)
	}
	return p, nil
}

type fakeOrderRepo struct {
	orders         map[kernel.UUID]*order.Order
	updateErr      error
	cancelledCount int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[kernel.UUID]*order.Order)}
}

func (r *fakeOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.orders[o.ID()] = o
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.orders[o.ID()] = o
	return nil
}

func (r *fakeOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return o, nil
}

func (r *fakeOrderRepo) GetAllWaiting(_ context.Context) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.Status() == order.StatusWaiting {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetBySeller(_ context.Context, sellerID kernel.UUID) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.SellerID().IsEqual(sellerID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetByCourier(_ context.Context, courierID kernel.UUID) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.CourierID() != nil && o.CourierID().IsEqual(courierID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) CountCancelledBySellerSince(_ context.Context, _ kernel.UUID, _ time.Time) (int, error) {
	return r.cancelledCount, nil
}

type fakeLedgerRepo struct {
	entries []*ledger.Entry
}

func (r *fakeLedgerRepo) Add(_ context.Context, entries ...*ledger.Entry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *fakeLedgerRepo) GetByUser(_ context.Context, userID kernel.UUID, limit int) ([]*ledger.Entry, error) {
	var out []*ledger.Entry
	for _, e := range r.entries {
		if e.UserID().IsEqual(userID) {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeLedgerRepo) byType(et ledger.EntryType) []*ledger.Entry {
	var out []*ledger.Entry
	for _, e := range r.entries {
		if e.EntryType() == et {
			out = append(out, e)
		}
	}
	return out
}

type fakeReviewRepo struct {
	reviews []*review.Review
}

func (r *fakeReviewRepo) Add(_ context.Context, rv *review.Review) error {
	r.reviews = append(r.reviews, rv)
	return nil
}

func (r *fakeReviewRepo) Exists(_ context.Context, orderID, reviewerID kernel.UUID) (bool, error) {
	for _, rv := range r.reviews {
		if rv.OrderID().IsEqual(orderID) && rv.ReviewerID().IsEqual(reviewerID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) CountByOrder(_ context.Context, orderID kernel.UUID) (int, error) {
	n := 0
	for _, rv := range r.reviews {
		if rv.OrderID().IsEqual(orderID) {
			n++
		}
	}
	return n, nil
}

func (r *fakeReviewRepo) GetStarsByTarget(_ context.Context, targetID kernel.UUID) ([]int, error) {
	var out []int
	for _, rv := range r.reviews {
		if rv.TargetID().IsEqual(targetID) {
			out = append(out, rv.Stars())
		}
	}
	return out, nil
}

type fakeTimerRepo struct {
	jobs []ports.TimerJob
}

func (r *fakeTimerRepo) Add(_ context.Context, job ports.TimerJob) error {
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *fakeTimerRepo) GetDue(_ context.Context, now time.Time, limit int) ([]ports.TimerJob, error) {
	var out []ports.TimerJob
	for _, j := range r.jobs {
		if j.FiredAt == nil && !j.FireAt.After(now) {
			out = append(out, j)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeTimerRepo) MarkFired(_ context.Context, id kernel.UUID, now time.Time) error {
	for i := range r.jobs {
		if r.jobs[i].ID.IsEqual(id) {
			if r.jobs[i].FiredAt != nil {
				return errs.NewConflictError("timer job already fired")
			}
			at := now
			r.jobs[i].FiredAt = &at
			return nil
		}
	}
	return errs.NewObjectNotFoundError("timerJobID", id)
}

type fakeGeoIndex struct {
	mu        sync.Mutex
	locations map[kernel.UUID]kernel.GeoPoint
}

func newFakeGeoIndex() *fakeGeoIndex {
	return &fakeGeoIndex{locations: make(map[kernel.UUID]kernel.GeoPoint)}
}

func (g *fakeGeoIndex) Update(_ context.Context, courierID kernel.UUID, point kernel.GeoPoint) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.locations[courierID] = point
	return nil
}

func (g *fakeGeoIndex) Locate(_ context.Context, courierID kernel.UUID) (kernel.GeoPoint, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.locations[courierID]
	if !ok {
		return kernel.GeoPoint{}, errs.NewLocationUnavailableError(courierID)
	}
	return p, nil
}

func (g *fakeGeoIndex) FindNearby(_ context.Context, point kernel.GeoPoint, radiusKm float64, limit int) ([]ports.CourierLocation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []ports.CourierLocation
	for id, p := range g.locations {
		d, err := point.DistanceKm(p)
		if err != nil {
			return nil, err
		}
		if radiusKm > 0 && d > radiusKm {
			continue
		}
		out = append(out, ports.CourierLocation{CourierID: id, Point: p, DistanceKm: d})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (g *fakeGeoIndex) Remove(_ context.Context, courierID kernel.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locations, courierID)
	return nil
}

type notification struct {
	userID kernel.UUID
	event  string
}

type fakeNotifier struct {
	sent []notification
}

func (n *fakeNotifier) Notify(_ context.Context, userID kernel.UUID, event string, _ map[string]any) {
	n.sent = append(n.sent, notification{userID: userID, event: event})
}

// fakeUoW satisfies every unit of work facet the handlers depend on.
type fakeUoW struct {
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	orders   *fakeOrderRepo
	ledgers  *fakeLedgerRepo
	reviews  *fakeReviewRepo
	timers   *fakeTimerRepo

	begun      int
	committed  int
	rolledBack int
	beginErr   error
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		users:    newFakeUserRepo(),
		profiles: newFakeProfileRepo(),
		orders:   newFakeOrderRepo(),
		ledgers:  &fakeLedgerRepo{},
		reviews:  &fakeReviewRepo{},
		timers:   &fakeTimerRepo{},
	}
}

func (u *fakeUoW) Begin(context.Context) error {
	if u.beginErr != nil {
		return u.beginErr
	}
	u.begun++
	return nil
}

func (u *fakeUoW) Commit(context.Context) error {
	u.committed++
	return nil
}

func (u *fakeUoW) Rollback(context.Context) error {
	u.rolledBack++
	return nil
}

func (u *fakeUoW) UserRepository() ports.UserRepository                       { return u.users }
func (u *fakeUoW) CourierProfileRepository() ports.CourierProfileRepository   { return u.profiles }
func (u *fakeUoW) OrderRepository() ports.OrderRepository                     { return u.orders }
func (u *fakeUoW) LedgerRepository() ports.LedgerRepository                   { return u.ledgers }
func (u *fakeUoW) ReviewRepository() ports.ReviewRepository                   { return u.reviews }
func (u *fakeUoW) TimerJobRepository() ports.TimerJobRepository               { return u.timers }

type fakeUoWFactory struct {
	uow *fakeUoW
}

func (f fakeUoWFactory) Create() commands.OrderUoW { return f.uow }

type fakeWalletUoWFactory struct {
	uow *fakeUoW
}

func (f fakeWalletUoWFactory) Create() commands.WalletUoW { return f.uow }

type fakeUserUoWFactory struct {
	uow *fakeUoW
}

func (f fakeUserUoWFactory) Create() commands.UserUoW { return f.uow }

type fakeReviewUoWFactory struct {
	uow *fakeUoW
}

func (f fakeReviewUoWFactory) Create() commands.ReviewUoW { return f.uow }
