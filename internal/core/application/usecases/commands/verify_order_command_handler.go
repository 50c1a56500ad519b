package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/ports"
)

// VerifyOrderCommandHandler approves pending customer orders for
// fulfillment, stamping the approving staff identity onto the order.
type VerifyOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewVerifyOrderCommandHandler creates a handler for order approval.
func NewVerifyOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	logger *slog.Logger,
) VerifyOrderCommandHandler {
	return VerifyOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle resolves the staff identity behind the token and approves the
// order: Pending -> Confirmed with a confirmation stamp.
func (h VerifyOrderCommandHandler) Handle(ctx context.Context, cmd VerifyOrderCommand) error {
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

	if err = aggregate.Verify(staff.ID, staff.Name, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := orderEvent(ports.EventOrderVerified, aggregate)
	event.Payload = map[string]any{"verified_by": staff.ID}
	publishEvent(ctx, h.notifier, h.logger, event)

	return nil
}
