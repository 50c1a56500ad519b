package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
)

// MergeOrdersCommandHandler consolidates orders onto one check. The closed
// sources and the merged order are written in one transaction, so the merge
// is all-or-nothing.
type MergeOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewMergeOrdersCommandHandler creates a handler for order merges.
func NewMergeOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	logger *slog.Logger,
) MergeOrdersCommandHandler {
	return MergeOrdersCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle merges the source orders in the order their ids were given; the
// first source donates the customer and payment context. Sources from
// different tables merge fine, it is logged for the floor staff's benefit.
func (h MergeOrdersCommandHandler) Handle(ctx context.Context, cmd MergeOrdersCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	staff, err := h.identity.Identify(ctx, cmd.Token())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	sources := make([]*order.Order, 0, len(cmd.OrderIDs()))
	for _, id := range cmd.OrderIDs() {
		source, getErr := orderRepo.Get(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		sources = append(sources, source)
	}

	h.warnOnTableMismatch(ctx, sources)

	merged, err := order.MergeOrders(sources, cmd.MergedName(), staff.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	for _, source := range sources {
		if err = orderRepo.Update(ctx, source); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Add(ctx, merged); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	sourceIDs := make([]string, len(sources))
	for i, source := range sources {
		sourceIDs[i] = source.ID().String()
	}

	event := orderEvent(ports.EventOrdersMerged, merged)
	event.Payload = map[string]any{
		"merged_by":        staff.ID,
		"source_order_ids": sourceIDs,
	}
	publishEvent(ctx, h.notifier, h.logger, event)

	return merged, nil
}

func (h MergeOrdersCommandHandler) warnOnTableMismatch(ctx context.Context, sources []*order.Order) {
	first := sources[0].Customer().Table
	for _, source := range sources[1:] {
		if source.Customer().Table != first {
			h.logger.WarnContext(ctx, "merging orders from different tables",
				"table", first,
				"other_table", source.Customer().Table,
				"order_number", source.OrderNumber())
		}
	}
}
