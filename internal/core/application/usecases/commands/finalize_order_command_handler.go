package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/ports"
)

// FinalizeOrderCommandHandler commits draft carts to fulfillment and
// deducts the sold units from inventory.
type FinalizeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	stock      ports.StockAdjuster
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewFinalizeOrderCommandHandler creates a handler for draft finalization.
func NewFinalizeOrderCommandHandler(
	uowFactory OrderUoWFactory,
	stock ports.StockAdjuster,
	notifier ports.Notifier,
	logger *slog.Logger,
) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{
		uowFactory: uowFactory,
		stock:      stock,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle finalizes the draft. An empty cart is rejected by the domain; the
// target status depends on who created the order. Stock deduction runs
// after commit; its failure is logged, never rolled back into the
// finalization.
func (h FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) error {
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

	if err = aggregate.Finalize(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	deductStock(ctx, h.stock, h.logger, stockLinesForItems(aggregate.Items()))

	publishEvent(ctx, h.notifier, h.logger, orderEvent(ports.EventOrderStatusChanged, aggregate))
	return nil
}
