package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
)

// publishEvent sends a change notification after the owning transaction has
// committed. Publish failures are logged and swallowed: consumers tolerate a
// missed event, while rolling back a committed operation is not an option.
func publishEvent(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, event ports.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := notifier.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "event publish failed",
			"kind", string(event.Kind),
			"order_id", event.OrderID,
			"error", err)
	}
}

// orderEvent builds the common envelope of a single-order event.
func orderEvent(kind ports.EventKind, o *order.Order) ports.Event {
	return ports.Event{
		Kind:        kind,
		OrderID:     o.ID().String(),
		OrderNumber: o.OrderNumber(),
		Status:      o.Status().String(),
	}
}

// restock returns sellable units to inventory after a cancellation or
// return has committed. Failures are logged for manual reconciliation.
func restock(ctx context.Context, adjuster ports.StockAdjuster, logger *slog.Logger, lines []ports.StockLine) {
	if len(lines) == 0 {
		return
	}

	if err := adjuster.Restock(ctx, lines); err != nil {
		logger.ErrorContext(ctx, "stock adjustment failed, reconcile manually",
			"lines", len(lines),
			"error", err)
	}
}

// deductStock consumes inventory after a draft has been finalized.
// Failures are logged for manual reconciliation.
func deductStock(ctx context.Context, adjuster ports.StockAdjuster, logger *slog.Logger, lines []ports.StockLine) {
	if len(lines) == 0 {
		return
	}

	if err := adjuster.Deduct(ctx, lines); err != nil {
		logger.ErrorContext(ctx, "stock adjustment failed, reconcile manually",
			"lines", len(lines),
			"error", err)
	}
}

// stockLinesForItems maps order lines to their product stock adjustments.
func stockLinesForItems(items []*order.Item) []ports.StockLine {
	lines := make([]ports.StockLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, ports.StockLine{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
		})
	}
	return lines
}
