package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/ports"
)

// HoldOrderCommandHandler parks in-progress orders.
type HoldOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewHoldOrderCommandHandler creates a handler for order holds.
func NewHoldOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	logger *slog.Logger,
) HoldOrderCommandHandler {
	return HoldOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle places the order on hold on behalf of the staff member behind the
// token. Items and totals stay untouched for the duration of the hold.
func (h HoldOrderCommandHandler) Handle(ctx context.Context, cmd HoldOrderCommand) error {
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

	if err = aggregate.PlaceOnHold(cmd.HoldName(), staff.ID, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := orderEvent(ports.EventOrderHeld, aggregate)
	event.Payload = map[string]any{
		"hold_name": cmd.HoldName(),
		"held_by":   staff.ID,
	}
	publishEvent(ctx, h.notifier, h.logger, event)

	return nil
}
