// Package jobs provides the scheduled background tasks of the POS service,
// built on github.com/robfig/cron/v3. Currently that is the draft cleanup
// sweep; JobManager is the single start/stop point the composition root
// talks to.
package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"pos/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	draftCleanupJob *DraftCleanupJob
}

// NewJobManager creates a job manager wiring the draft cleanup sweep to the
// given handler.
func NewJobManager(
	deleteDraftsHandler commands.DeleteDraftsCommandHandler,
	cleanupSchedule string,
	draftTTL time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		draftCleanupJob: NewDraftCleanupJob(deleteDraftsHandler, cleanupSchedule, draftTTL, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.draftCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start draft cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.draftCleanupJob.Stop()
}
