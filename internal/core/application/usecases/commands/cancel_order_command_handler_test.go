package commands_test

import (
	"testing"
	"time"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler(t *testing.T) {
	newCommand := func(t *testing.T, orderID kernel.UUID) commands.CancelOrderCommand {
		t.Helper()
		cmd, err := commands.NewCancelOrderCommand(orderID, "customer left",
			order.CustomerRequest, nil, nil, "token-1")
		require.NoError(t, err)
		return cmd
	}

	t.Run("should cancel unpaid order and restock its items", func(t *testing.T) {
		item := testItem(t, "Latte", 450, 2)
		aggregate := testOrder(t, item)

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		identity := &MockIdentityProvider{}
		stock := &MockStockAdjuster{}
		notifier := &MockNotifier{}

		identity.On("Identify", mock.Anything, "token-1").Return(testStaff, nil)
		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil),
			repo.On("Update", mock.Anything, aggregate).Return(nil),
			uow.On("Commit", mock.Anything).Return(nil),
			stock.On("Restock", mock.Anything,
				[]ports.StockLine{{ProductID: item.ProductID(), Quantity: 2}}).Return(nil),
			notifier.On("Publish", mock.Anything, ports.EventOrderCancelled).Return(nil),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		handler := commands.NewCancelOrderCommandHandler(factory, identity, stock, notifier, discardLogger())
		err := handler.Handle(t.Context(), newCommand(t, aggregate.ID()))

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, aggregate.Status())
		require.NotNil(t, aggregate.Cancellation())
		assert.Nil(t, aggregate.Cancellation().RefundAmount)
		mock.AssertExpectationsForObjects(t, repo, uow, factory, identity, stock, notifier)
	})

	t.Run("should default refund to full total for paid order", func(t *testing.T) {
		aggregate := testOrder(t, testItem(t, "Latte", 450, 2))
		require.NoError(t, aggregate.MarkPaymentResult(true, time.Now().UTC()))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		identity := &MockIdentityProvider{}
		stock := &MockStockAdjuster{}
		notifier := &MockNotifier{}

		identity.On("Identify", mock.Anything, "token-1").Return(testStaff, nil)
		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(repo)
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		repo.On("Update", mock.Anything, aggregate).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		stock.On("Restock", mock.Anything, mock.Anything).Return(nil)
		notifier.On("Publish", mock.Anything, ports.EventOrderCancelled).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		handler := commands.NewCancelOrderCommandHandler(factory, identity, stock, notifier, discardLogger())
		err := handler.Handle(t.Context(), newCommand(t, aggregate.ID()))

		require.NoError(t, err)
		require.NotNil(t, aggregate.Cancellation().RefundAmount)
		assert.Equal(t, int64(900), aggregate.Cancellation().RefundAmount.Amount())
		assert.Equal(t, order.PaymentSuccess, aggregate.PaymentStatus())
		mock.AssertExpectationsForObjects(t, repo, uow, factory, identity, stock, notifier)
	})

	t.Run("should fail when identity cannot be resolved", func(t *testing.T) {
		aggregate := testOrder(t, testItem(t, "Latte", 450, 1))

		factory := &MockOrderUoWFactory{}
		identity := &MockIdentityProvider{}
		stock := &MockStockAdjuster{}
		notifier := &MockNotifier{}

		identity.On("Identify", mock.Anything, "token-1").Return(ports.Identity{}, errNotImplemented)

		handler := commands.NewCancelOrderCommandHandler(factory, identity, stock, notifier, discardLogger())
		err := handler.Handle(t.Context(), newCommand(t, aggregate.ID()))

		require.ErrorIs(t, err, errNotImplemented)
		factory.AssertNotCalled(t, "Create")
		mock.AssertExpectationsForObjects(t, identity)
	})

	t.Run("should fail for completed order without touching stock", func(t *testing.T) {
		aggregate := testOrder(t, testItem(t, "Latte", 450, 1))
		require.NoError(t, aggregate.MarkPaymentResult(true, time.Now().UTC()))
		require.NoError(t, aggregate.Advance(order.Preparing, time.Now().UTC()))
		require.NoError(t, aggregate.Advance(order.Ready, time.Now().UTC()))
		require.NoError(t, aggregate.Advance(order.Completed, time.Now().UTC()))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		identity := &MockIdentityProvider{}
		stock := &MockStockAdjuster{}
		notifier := &MockNotifier{}

		identity.On("Identify", mock.Anything, "token-1").Return(testStaff, nil)
		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		handler := commands.NewCancelOrderCommandHandler(factory, identity, stock, notifier, discardLogger())
		err := handler.Handle(t.Context(), newCommand(t, aggregate.ID()))

		var invalidTransition *order.InvalidTransitionError
		require.ErrorAs(t, err, &invalidTransition)
		stock.AssertNotCalled(t, "Restock", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		mock.AssertExpectationsForObjects(t, repo, uow, factory, identity)
	})

	t.Run("should still succeed when restock fails", func(t *testing.T) {
		aggregate := testOrder(t, testItem(t, "Latte", 450, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		identity := &MockIdentityProvider{}
		stock := &MockStockAdjuster{}
		notifier := &MockNotifier{}

		identity.On("Identify", mock.Anything, "token-1").Return(testStaff, nil)
		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(repo)
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		repo.On("Update", mock.Anything, aggregate).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		stock.On("Restock", mock.Anything, mock.Anything).Return(errNotImplemented)
		notifier.On("Publish", mock.Anything, ports.EventOrderCancelled).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		handler := commands.NewCancelOrderCommandHandler(factory, identity, stock, notifier, discardLogger())
		err := handler.Handle(t.Context(), newCommand(t, aggregate.ID()))

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, aggregate.Status())
		mock.AssertExpectationsForObjects(t, repo, uow, factory, identity, stock, notifier)
	})
}
