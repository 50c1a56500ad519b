package jobs

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DraftCleanupJob periodically purges draft carts that no terminal has
// touched within the configured TTL. Abandoned drafts otherwise pile up
// forever, one per walked-away customer session.
type DraftCleanupJob struct {
	handler  commands.DeleteDraftsCommandHandler
	cron     *cron.Cron
	schedule string
	ttl      time.Duration
	logger   *slog.Logger
}

// NewDraftCleanupJob creates the cleanup job. The schedule is a standard
// five-field cron expression; ttl is how long an untouched draft survives.
func NewDraftCleanupJob(
	handler commands.DeleteDraftsCommandHandler,
	schedule string,
	ttl time.Duration,
	logger *slog.Logger,
) *DraftCleanupJob {
	return &DraftCleanupJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		ttl:      ttl,
		logger:   logger.With("component", "draft_cleanup_job"),
	}
}

// Start schedules the cleanup sweep.
func (j *DraftCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "draft cleanup job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Stop stops the cleanup sweep.
func (j *DraftCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "draft cleanup job stopped")
}

func (j *DraftCleanupJob) sweep() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-j.ttl)

	cmd, err := commands.NewDeleteDraftsCommand(cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "draft cleanup sweep misconfigured", "error", err)
		return
	}

	deleted, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "draft cleanup sweep failed", "error", err)
		return
	}

	if deleted > 0 {
		j.logger.InfoContext(ctx, "abandoned drafts deleted", "count", deleted)
	}
}
