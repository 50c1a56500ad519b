package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
)

// SplitOrderCommandHandler partitions orders for separate checks. The
// source order and all resulting orders are written in one transaction, so
// the split is all-or-nothing.
type SplitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewSplitOrderCommandHandler creates a handler for order splits.
func NewSplitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	logger *slog.Logger,
) SplitOrderCommandHandler {
	return SplitOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle splits the source order and returns the new orders. The closed
// source is written before the new orders are inserted so the item rows
// re-parent cleanly within the transaction.
func (h SplitOrderCommandHandler) Handle(ctx context.Context, cmd SplitOrderCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	staff, err := h.identity.Identify(ctx, cmd.Token())
	if err != nil {
		return nil, err
	}

	specs := make([]order.SplitSpec, 0, len(cmd.Splits()))
	for _, input := range cmd.Splits() {
		specs = append(specs, order.SplitSpec{
			Name:    input.Name,
			ItemIDs: input.ItemIDs,
		})
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	source, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	children, err := source.Split(specs, staff.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, source); err != nil {
		return nil, err
	}

	for _, child := range children {
		if err = orderRepo.Add(ctx, child); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	childIDs := make([]string, len(children))
	for i, child := range children {
		childIDs[i] = child.ID().String()
	}

	event := orderEvent(ports.EventOrderSplit, source)
	event.Payload = map[string]any{
		"split_by":      staff.ID,
		"new_order_ids": childIDs,
	}
	publishEvent(ctx, h.notifier, h.logger, event)

	return children, nil
}
