package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/ports"
)

// DeleteDraftsCommandHandler purges abandoned draft carts. Invoked by staff
// cleanup actions and by the scheduled TTL job.
type DeleteDraftsCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewDeleteDraftsCommandHandler creates a handler for bulk draft deletion.
func NewDeleteDraftsCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) DeleteDraftsCommandHandler {
	return DeleteDraftsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle deletes all drafts older than the command's cutoff and returns how
// many were removed. Deleting zero drafts is a successful no-op and emits no
// event. One event is published per distinct session key, carrying the ids
// deleted under that key, so each ordering session observes exactly its own
// removals.
func (h DeleteDraftsCommandHandler) Handle(ctx context.Context, cmd DeleteDraftsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	drafts, err := orderRepo.GetDraftsOlderThan(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}
	if len(drafts) == 0 {
		return 0, nil
	}

	ids := make([]kernel.UUID, len(drafts))
	sessionKeys := make([]string, 0)
	idsBySession := make(map[string][]string)
	for i, draft := range drafts {
		ids[i] = draft.ID()

		key := draft.SessionKey()
		if _, seen := idsBySession[key]; !seen {
			sessionKeys = append(sessionKeys, key)
		}
		idsBySession[key] = append(idsBySession[key], draft.ID().String())
	}

	if err = orderRepo.DeleteByIDs(ctx, ids); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "abandoned drafts deleted",
		"count", len(ids), "sessions", len(sessionKeys))
	for _, key := range sessionKeys {
		publishEvent(ctx, h.notifier, h.logger, ports.Event{
			Kind: ports.EventDraftsDeleted,
			Payload: map[string]any{
				"session_key": key,
				"order_ids":   idsBySession[key],
			},
		})
	}

	return len(ids), nil
}
