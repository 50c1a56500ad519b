package commands

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
)

// ConfirmPaymentCommandHandler settles payment state on orders. Cash is
// trusted to the operating staff; card and QR charges are checked against
// the external provider before the order is marked paid.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	verifier   ports.PaymentVerifier
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewConfirmPaymentCommandHandler creates a handler for payment
// confirmation.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	verifier ports.PaymentVerifier,
	notifier ports.Notifier,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle verifies the charge where the payment method requires it and
// records the verdict on the order. A declined charge is recorded as Failed
// and is not an error; the terminal may retry.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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

	success := true
	if aggregate.PaymentMethod() != order.Cash {
		success, err = h.verifier.Verify(ctx, aggregate.ID(), cmd.Reference())
		if err != nil {
			return err
		}
	}

	if err = aggregate.MarkPaymentResult(success, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := orderEvent(ports.EventPaymentConfirmed, aggregate)
	event.Payload = map[string]any{
		"payment_status": aggregate.PaymentStatus().String(),
		"payment_method": aggregate.PaymentMethod().String(),
	}
	publishEvent(ctx, h.notifier, h.logger, event)

	return nil
}
