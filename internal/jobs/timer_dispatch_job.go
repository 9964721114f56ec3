package jobs

import (
	"context"
	"errors"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// dispatchBatchLimit caps how many due timers one tick processes.
const dispatchBatchLimit = 100

// TimerDispatchJob polls the timer_jobs table every second and fires due
// timers: delivery timeouts expire orders, confirmation timeouts confirm
// them. A job is claimed with a conditional mark-fired write before its
// handler runs, so concurrent pollers dispatch each job at most once; the
// handlers re-validate order state, so a stale job is a silent no-op.
type TimerDispatchJob struct {
	timers      ports.TimerJobRepository
	expire      commands.ExpireDeliveryCommandHandler
	autoConfirm commands.AutoConfirmDeliveryCommandHandler
	cron        *cron.Cron
	logger      *zap.Logger
}

// NewTimerDispatchJob creates the per-second timer poller.
func NewTimerDispatchJob(
	timers ports.TimerJobRepository,
	expire commands.ExpireDeliveryCommandHandler,
	autoConfirm commands.AutoConfirmDeliveryCommandHandler,
	logger *zap.Logger,
) *TimerDispatchJob {
	return &TimerDispatchJob{
		timers:      timers,
		expire:      expire,
		autoConfirm: autoConfirm,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With(zap.String("component", "timer_dispatch_job")),
	}
}

// Start schedules the poller to run every second.
func (j *TimerDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.dispatchDue(ctx, time.Now().UTC()); err != nil {
			j.logger.Error("timer dispatch tick failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("timer dispatch job started")
	return nil
}

// Stop halts the poller. Already running ticks finish.
func (j *TimerDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.Info("timer dispatch job stopped")
}

func (j *TimerDispatchJob) dispatchDue(ctx context.Context, now time.Time) error {
	due, err := j.timers.GetDue(ctx, now, dispatchBatchLimit)
	if err != nil {
		return err
	}

	for _, job := range due {
		// Claim before handling. Losing the claim means another poller
		// has this job.
		if err := j.timers.MarkFired(ctx, job.ID, now); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				continue
			}
			return err
		}

		if err := j.handle(ctx, job); err != nil {
			j.logger.Error("timer handler failed",
				zap.String("timer_id", job.ID.String()),
				zap.String("order_id", job.OrderID.String()),
				zap.String("kind", string(job.Kind)),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (j *TimerDispatchJob) handle(ctx context.Context, job ports.TimerJob) error {
	switch job.Kind {
	case ports.TimerJobDeliveryTimeout:
		cmd, err := commands.NewExpireDeliveryCommand(job.OrderID)
		if err != nil {
			return err
		}
		return j.expire.Handle(ctx, cmd)
	case ports.TimerJobAutoConfirm:
		cmd, err := commands.NewAutoConfirmDeliveryCommand(job.OrderID)
		if err != nil {
			return err
		}
		return j.autoConfirm.Handle(ctx, cmd)
	default:
		return errs.NewValueIsInvalidError("timer job kind " + string(job.Kind))
	}
}
