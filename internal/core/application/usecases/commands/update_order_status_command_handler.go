package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/ports"
)

// UpdateOrderStatusCommandHandler progresses orders through the fulfillment
// flow. The stale-state guarded repository write makes concurrent kitchen
// terminals safe: the second writer gets a conflict instead of silently
// overwriting the first.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status
// progression.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle advances the order to the command's target status.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	previous := aggregate.Status()
	if err = aggregate.Advance(cmd.Target(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := orderEvent(ports.EventOrderStatusChanged, aggregate)
	event.Payload = map[string]any{"previous_status": previous.String()}
	publishEvent(ctx, h.notifier, h.logger, event)

	return nil
}
