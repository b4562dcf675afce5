package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob     *OutboxRelayJob
	workloadMetricsJob *WorkloadMetricsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	relayer outboxRelayer,
	relayConfig OutboxRelayConfig,
	lister activeOrdersLister,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob:     NewOutboxRelayJob(relayer, relayConfig, logger),
		workloadMetricsJob: NewWorkloadMetricsJob(lister, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.workloadMetricsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start workload metrics job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.workloadMetricsJob.Stop()
	jm.outboxRelayJob.Stop()
}
