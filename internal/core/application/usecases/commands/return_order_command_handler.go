package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
)

// ReturnOrderCommandHandler records returns against completed orders. The
// order itself stays Completed; each accepted return is a separate record
// and repeat partial returns accumulate until nothing is left to return.
type ReturnOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.IdentityProvider
	stock      ports.StockAdjuster
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewReturnOrderCommandHandler creates a handler for order returns.
func NewReturnOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.IdentityProvider,
	stock ports.StockAdjuster,
	notifier ports.Notifier,
	logger *slog.Logger,
) ReturnOrderCommandHandler {
	return ReturnOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		stock:      stock,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle validates the return against the order and its prior returns and
// persists the resulting record. Returned units go back to stock after
// commit.
func (h ReturnOrderCommandHandler) Handle(ctx context.Context, cmd ReturnOrderCommand) (*order.ReturnRecord, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	staff, err := h.identity.Identify(ctx, cmd.Token())
	if err != nil {
		return nil, err
	}

	request, err := buildReturnRequest(cmd)
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

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	prior, err := orderRepo.GetReturnsForOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	record, err := aggregate.BuildReturn(kernel.NewUUID(), request, prior, staff.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.AddReturn(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	restock(ctx, h.stock, h.logger, returnedStockLines(aggregate, record))

	event := orderEvent(ports.EventOrderReturned, aggregate)
	event.Payload = map[string]any{
		"return_id":    record.ID().String(),
		"return_type":  record.Type().String(),
		"total_refund": record.TotalRefund().Amount(),
		"processed_by": staff.ID,
	}
	publishEvent(ctx, h.notifier, h.logger, event)

	return record, nil
}

func buildReturnRequest(cmd ReturnOrderCommand) (order.ReturnRequest, error) {
	lines := make([]order.ReturnLine, 0, len(cmd.Lines()))
	for _, input := range cmd.Lines() {
		refund, err := kernel.NewMoney(input.RefundAmount)
		if err != nil {
			return order.ReturnRequest{}, err
		}

		lines = append(lines, order.ReturnLine{
			OrderItemID:  input.OrderItemID,
			Quantity:     input.Quantity,
			RefundAmount: refund,
		})
	}

	return order.ReturnRequest{
		Type:         cmd.ReturnType(),
		Reason:       cmd.Reason(),
		RefundMethod: cmd.RefundMethod(),
		Lines:        lines,
		Notes:        cmd.Notes(),
	}, nil
}

// returnedStockLines maps the accepted return lines back to product stock
// adjustments via the order's items.
func returnedStockLines(aggregate *order.Order, record *order.ReturnRecord) []ports.StockLine {
	lines := make([]ports.StockLine, 0, len(record.Lines()))
	for _, line := range record.Lines() {
		item, err := aggregate.ItemByID(line.OrderItemID)
		if err != nil {
			continue
		}

		lines = append(lines, ports.StockLine{
			ProductID: item.ProductID(),
			Quantity:  line.Quantity,
		})
	}
	return lines
}
