// Package timerrepo persists one-shot timer jobs with GORM. Jobs are armed
// in the same transaction as the status change they watch, and marked fired
// with a conditional update so concurrent pollers dispatch each job once.
package timerrepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"

	"github.com/google/uuid"
)

// TimerJobDTO is the database row behind a scheduled timer.
type TimerJobDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Kind    string    `gorm:"type:varchar(24)"`
	FireAt  time.Time `gorm:"index"`
	FiredAt *time.Time
}

// TableName overrides GORM's default naming to use "timer_jobs".
func (TimerJobDTO) TableName() string {
	return "timer_jobs"
}

func fromDomain(job ports.TimerJob) TimerJobDTO {
	return TimerJobDTO{
		ID:      job.ID.Bytes(),
		OrderID: job.OrderID.Bytes(),
		Kind:    string(job.Kind),
		FireAt:  job.FireAt,
		FiredAt: job.FiredAt,
	}
}

func toDomain(dto TimerJobDTO) (ports.TimerJob, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.TimerJob{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.TimerJob{}, err
	}

	return ports.TimerJob{
		ID:      id,
		OrderID: orderID,
		Kind:    ports.TimerJobKind(dto.Kind),
		FireAt:  dto.FireAt,
		FiredAt: dto.FiredAt,
	}, nil
}
