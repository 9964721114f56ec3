package timerrepo

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTimerJobRepository implements ports.TimerJobRepository using GORM.
type GormTimerJobRepository struct {
	db *gorm.DB
}

// NewGormTimerJobRepository creates a new GORM timer job repository.
func NewGormTimerJobRepository(db *gorm.DB) *GormTimerJobRepository {
	return &GormTimerJobRepository{db: db}
}

// Add saves a new timer job to the database.
func (r *GormTimerJobRepository) Add(ctx context.Context, job ports.TimerJob) error {
	if err := job.ID.Validate(); err != nil {
		return err
	}
	if err := job.OrderID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(job)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetDue retrieves unfired jobs whose fire time has passed, oldest first.
func (r *GormTimerJobRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]ports.TimerJob, error) {
	tx := r.db.WithContext(ctx).
		Where("fired_at IS NULL AND fire_at <= ?", now).
		Order("fire_at ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var dtos []TimerJobDTO
	if err := tx.Find(&dtos).Error; err != nil {
		return nil, err
	}

	jobs := make([]ports.TimerJob, 0, len(dtos))
	for _, dto := range dtos {
		job, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// MarkFired stamps the job as dispatched. The conditional write makes the
// claim exclusive: a second poller gets Conflict instead of a double fire.
func (r *GormTimerJobRepository) MarkFired(ctx context.Context, id kernel.UUID, now time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TimerJobDTO{}).
		Where("id = ? AND fired_at IS NULL", id.Bytes()).
		Update("fired_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&TimerJobDTO{}).
			Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("timerJobID", id.String())
		}
		return errs.NewConflictError("timer job already fired")
	}
	return nil
}
