package ports

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
)

// TimerJobKind identifies what a due timer should do with its order.
type TimerJobKind string

const (
	// TimerJobDeliveryTimeout expires an order whose courier ran out of time
	// on the way to the client.
	TimerJobDeliveryTimeout TimerJobKind = "delivery_timeout"
	// TimerJobAutoConfirm confirms a delivered order the seller ignored.
	TimerJobAutoConfirm TimerJobKind = "auto_confirm"
)

// TimerJob is a persisted one-shot timer. Jobs are scheduled inside the same
// transaction as the status change that armed them, and fire at most once.
// The handler behind a job re-validates the order's status, so a stale job
// (e.g. an auto-confirm racing a manual confirmation) is a silent no-op.
type TimerJob struct {
	ID      kernel.UUID
	OrderID kernel.UUID
	Kind    TimerJobKind
	FireAt  time.Time
	FiredAt *time.Time
}

// TimerJobRepository defines the persistence contract for one-shot timers.
type TimerJobRepository interface {
	// Add persists a new timer job.
	Add(ctx context.Context, job TimerJob) error

	// GetDue retrieves unfired jobs whose FireAt has passed, oldest first,
	// up to limit.
	GetDue(ctx context.Context, now time.Time, limit int) ([]TimerJob, error)

	// MarkFired records that the job has been dispatched. Returns Conflict
	// when the job was already fired by a concurrent poller.
	MarkFired(ctx context.Context, id kernel.UUID, now time.Time) error
}
