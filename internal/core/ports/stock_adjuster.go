package ports

import (
	"context"

	"pos/internal/core/domain/model/kernel"
)

// StockLine is one (product, quantity) pair of a stock adjustment.
type StockLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// StockAdjuster keeps inventory counts in step with the order lifecycle:
// Deduct consumes stock when a draft is finalized, Restock puts sellable
// units back when a cancellation or return undoes the sale. Adjustment
// runs after the order transaction commits; a failed adjustment is logged
// for manual reconciliation rather than rolling the operation back.
type StockAdjuster interface {
	Deduct(ctx context.Context, lines []StockLine) error
	Restock(ctx context.Context, lines []StockLine) error
}
