package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

// SyncDraftCommandHandler handles draft cart synchronization. Each ordering
// session owns at most one draft; the handler creates it on first sync and
// overwrites its contents on every later one.
type SyncDraftCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewSyncDraftCommandHandler creates a handler for draft synchronization.
func NewSyncDraftCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) SyncDraftCommandHandler {
	return SyncDraftCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the draft synchronization command and returns the
// resulting draft. The whole cart is replaced rather than diffed, so a
// retried or out-of-order sync converges on the terminal's latest state.
func (h SyncDraftCommandHandler) Handle(ctx context.Context, cmd SyncDraftCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := buildItems(cmd.Items())
	if err != nil {
		return nil, err
	}

	sessionKey := cmd.SessionKey()
	if sessionKey == "" {
		sessionKey = order.DeriveSessionKey(cmd.Creator(), cmd.CreatorName())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	now := time.Now().UTC()

	draft, err := orderRepo.GetDraftBySessionKey(ctx, sessionKey)
	eventKind := ports.EventOrderUpdated

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		draft, err = order.NewDraftOrder(cmd.OrderID(), order.NewOrderNumber(now),
			cmd.Creator(), cmd.CreatorName(), sessionKey,
			cmd.Customer(), cmd.PaymentMethod(), items, now)
		if err != nil {
			return nil, err
		}

		if err = orderRepo.Add(ctx, draft); err != nil {
			return nil, err
		}
		eventKind = ports.EventOrderCreated

	case err != nil:
		return nil, err

	default:
		if err = draft.ReplaceItems(items, cmd.Customer(), now); err != nil {
			return nil, err
		}

		if err = orderRepo.Update(ctx, draft); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := orderEvent(eventKind, draft)
	event.Payload = map[string]any{
		"session_key": sessionKey,
		"item_count":  len(draft.Items()),
		"total":       draft.TotalAmount().Amount(),
	}
	publishEvent(ctx, h.notifier, h.logger, event)

	return draft, nil
}

// buildItems converts terminal-supplied cart lines into domain items, each
// with a fresh identity.
func buildItems(inputs []ItemInput) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(inputs))
	for _, input := range inputs {
		price, err := kernel.NewMoney(input.Price)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(kernel.NewUUID(), input.ProductID, input.Name,
			price, input.Quantity, input.SelectedSize, input.SelectedToppings, input.Note)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}
	return items, nil
}
