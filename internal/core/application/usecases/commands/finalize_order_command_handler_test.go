package commands_test

import (
	"testing"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFinalizeOrderCommandHandler(t *testing.T) {
	t.Run("should finalize customer draft to pending", func(t *testing.T) {
		aggregate := testDraftOrder(t, "table-2", testItem(t, "Latte", 450, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		stock := &MockStockAdjuster{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil),
			repo.On("Update", mock.Anything, aggregate).Return(nil),
			uow.On("Commit", mock.Anything).Return(nil),
			stock.On("Deduct", mock.Anything, mock.MatchedBy(func(lines []ports.StockLine) bool {
				return len(lines) == 1 && lines[0].Quantity == 1
			})).Return(nil),
			notifier.On("Publish", mock.Anything, ports.EventOrderStatusChanged).Return(nil),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		cmd, err := commands.NewFinalizeOrderCommand(aggregate.ID())
		require.NoError(t, err)

		handler := commands.NewFinalizeOrderCommandHandler(factory, stock, notifier, discardLogger())
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, aggregate.Status())
		mock.AssertExpectationsForObjects(t, repo, uow, factory, stock, notifier)
	})

	t.Run("should reject finalizing an empty draft", func(t *testing.T) {
		aggregate := testDraftOrder(t, "table-2")

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		stock := &MockStockAdjuster{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		cmd, err := commands.NewFinalizeOrderCommand(aggregate.ID())
		require.NoError(t, err)

		handler := commands.NewFinalizeOrderCommandHandler(factory, stock, notifier, discardLogger())
		err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Creating, aggregate.Status())
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		stock.AssertNotCalled(t, "Deduct", mock.Anything, mock.Anything)
		mock.AssertExpectationsForObjects(t, repo, uow, factory, stock)
	})
}

func TestRejectOrderCommandHandler(t *testing.T) {
	t.Run("should reject pending order with the given reason", func(t *testing.T) {
		aggregate := testPendingOrder(t, testItem(t, "Latte", 450, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		identity := &MockIdentityProvider{}
		notifier := &MockNotifier{}

		identity.On("Identify", mock.Anything, "token-1").Return(testStaff, nil)
		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil),
			repo.On("Update", mock.Anything, aggregate).Return(nil),
			uow.On("Commit", mock.Anything).Return(nil),
			notifier.On("Publish", mock.Anything, ports.EventOrderCancelled).Return(nil),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		cmd, err := commands.NewRejectOrderCommand(aggregate.ID(), "out of milk", "token-1")
		require.NoError(t, err)

		handler := commands.NewRejectOrderCommandHandler(factory, identity, notifier, discardLogger())
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, aggregate.Status())
		require.NotNil(t, aggregate.Cancellation())
		assert.Equal(t, "out of milk", aggregate.Cancellation().Reason)
		mock.AssertExpectationsForObjects(t, repo, uow, factory, identity, notifier)
	})

	t.Run("should fall back to the default reason when blank", func(t *testing.T) {
		aggregate := testPendingOrder(t, testItem(t, "Latte", 450, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		identity := &MockIdentityProvider{}
		notifier := &MockNotifier{}

		identity.On("Identify", mock.Anything, "token-1").Return(testStaff, nil)
		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(repo)
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		repo.On("Update", mock.Anything, aggregate).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		notifier.On("Publish", mock.Anything, ports.EventOrderCancelled).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewRejectOrderCommand(aggregate.ID(), "", "token-1")
		require.NoError(t, err)

		handler := commands.NewRejectOrderCommandHandler(factory, identity, notifier, discardLogger())
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.DefaultRejectReason, aggregate.Cancellation().Reason)
		mock.AssertExpectationsForObjects(t, repo, uow, factory, identity, notifier)
	})

	t.Run("should fail for order that is not pending", func(t *testing.T) {
		aggregate := testOrder(t, testItem(t, "Latte", 450, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		identity := &MockIdentityProvider{}
		notifier := &MockNotifier{}

		identity.On("Identify", mock.Anything, "token-1").Return(testStaff, nil)
		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		cmd, err := commands.NewRejectOrderCommand(aggregate.ID(), "no", "token-1")
		require.NoError(t, err)

		handler := commands.NewRejectOrderCommandHandler(factory, identity, notifier, discardLogger())
		err = handler.Handle(t.Context(), cmd)

		var invalidTransition *order.InvalidTransitionError
		require.ErrorAs(t, err, &invalidTransition)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		mock.AssertExpectationsForObjects(t, repo, uow, factory, identity)
	})
}
