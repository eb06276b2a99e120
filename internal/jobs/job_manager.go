package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	selfTestJob *SelfTestJob
}

// NewJobManager creates the job manager. An empty self-test schedule leaves
// the self-test job out.
func NewJobManager(runner DispatchRunner, selfTestSchedule string, logger *slog.Logger) *JobManager {
	jm := &JobManager{}
	if selfTestSchedule != "" {
		jm.selfTestJob = NewSelfTestJob(runner, selfTestSchedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.selfTestJob == nil {
		return nil
	}

	if err := jm.selfTestJob.Start(); err != nil {
		return fmt.Errorf("failed to start self-test job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.selfTestJob != nil {
		jm.selfTestJob.Stop()
	}
}
