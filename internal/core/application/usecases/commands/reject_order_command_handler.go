package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/ports"
)

// RejectOrderCommandHandler declines pending customer orders. Rejection is
// a cancellation under the hood: the order ends Cancelled with the standard
// refund policy applied.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewRejectOrderCommandHandler creates a handler for order rejection.
func NewRejectOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	logger *slog.Logger,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle rejects the pending order on behalf of the staff member behind the
// token.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
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

	if err = aggregate.Reject(cmd.Reason(), staff.ID, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := orderEvent(ports.EventOrderCancelled, aggregate)
	event.Payload = map[string]any{
		"reason":      aggregate.Cancellation().Reason,
		"rejected_by": staff.ID,
	}
	publishEvent(ctx, h.notifier, h.logger, event)

	return nil
}
