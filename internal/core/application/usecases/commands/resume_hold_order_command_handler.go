package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/ports"
)

// ResumeHoldOrderCommandHandler brings parked orders back to Pending, from
// which staff re-progress them. The hold record stays on the order as an
// audit trail.
type ResumeHoldOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewResumeHoldOrderCommandHandler creates a handler for resuming held
// orders.
func NewResumeHoldOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	logger *slog.Logger,
) ResumeHoldOrderCommandHandler {
	return ResumeHoldOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle resumes the held order on behalf of the staff member behind the
// token.
func (h ResumeHoldOrderCommandHandler) Handle(ctx context.Context, cmd ResumeHoldOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	staff, err := h.identity.Identify(ctx, cmd.Token())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ResumeFromHold(staff.ID, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := orderEvent(ports.EventOrderResumed, aggregate)
	event.Payload = map[string]any{"resumed_by": staff.ID}
	publishEvent(ctx, h.notifier, h.logger, event)

	return nil
}
