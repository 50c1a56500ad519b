package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
)

// CancelOrderCommandHandler terminates orders, resolves any refund
// obligation and returns the order's sellable units to stock.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.IdentityProvider
	stock      ports.StockAdjuster
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.IdentityProvider,
	stock ports.StockAdjuster,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		stock:      stock,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle cancels the order on behalf of the staff member behind the token.
// Stock adjustment and event publication run after commit; their failures
// are logged, never rolled back into the cancellation.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	items := aggregate.Items()

	err = aggregate.Cancel(order.CancellationRequest{
		Reason:       cmd.Reason(),
		ReasonType:   cmd.ReasonType(),
		RefundAmount: cmd.RefundAmount(),
		RefundMethod: cmd.RefundMethod(),
	}, staff.ID, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	restock(ctx, h.stock, h.logger, stockLinesForItems(items))

	event := orderEvent(ports.EventOrderCancelled, aggregate)
	payload := map[string]any{
		"reason":       aggregate.Cancellation().Reason,
		"reason_type":  aggregate.Cancellation().ReasonType.String(),
		"cancelled_by": staff.ID,
	}
	if refund := aggregate.Cancellation().RefundAmount; refund != nil {
		payload["refund_amount"] = refund.Amount()
		payload["refund_method"] = aggregate.Cancellation().RefundMethod.String()
	}
	event.Payload = payload
	publishEvent(ctx, h.notifier, h.logger, event)

	return nil
}
