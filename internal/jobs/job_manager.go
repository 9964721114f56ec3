// Package jobs contains the background schedulers. The only scheduled work
// in the system is the timer poller; the manager exists so the composition
// root starts and stops all jobs through one handle.
package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	timerDispatchJob *TimerDispatchJob
}

// NewJobManager creates a manager over the given jobs.
func NewJobManager(timerDispatchJob *TimerDispatchJob) *JobManager {
	return &JobManager{
		timerDispatchJob: timerDispatchJob,
	}
}

// StartAll starts every scheduled job.
func (jm *JobManager) StartAll() error {
	if err := jm.timerDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start timer dispatch job: %w", err)
	}
	return nil
}

// StopAll stops every scheduled job gracefully.
func (jm *JobManager) StopAll() {
	jm.timerDispatchJob.Stop()
}
