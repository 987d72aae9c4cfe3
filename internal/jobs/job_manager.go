// Package jobs provides scheduled background tasks, implemented as cron jobs
// using github.com/robfig/cron/v3 and coordinated by JobManager.
package jobs

import (
	"fmt"
	"log/slog"

	"shipping/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	carrierMetricsJob *CarrierMetricsJob
}

// NewJobManager creates a job manager wiring the query handlers the jobs
// depend on.
func NewJobManager(
	carrierPerformanceHandler queries.CarrierPerformanceQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		carrierMetricsJob: NewCarrierMetricsJob(carrierPerformanceHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.carrierMetricsJob.Start(); err != nil {
		return fmt.Errorf("failed to start carrier metrics job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.carrierMetricsJob.Stop()
}
