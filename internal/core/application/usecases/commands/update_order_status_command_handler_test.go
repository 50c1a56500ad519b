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

func TestUpdateOrderStatusCommandHandler(t *testing.T) {
	t.Run("should advance the order to the target status", func(t *testing.T) {
		aggregate := testOrder(t, testItem(t, "Latte", 450, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil),
			repo.On("Update", mock.Anything, aggregate).Return(nil),
			uow.On("Commit", mock.Anything).Return(nil),
			notifier.On("Publish", mock.Anything, ports.EventOrderStatusChanged).Return(nil),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Preparing)
		require.NoError(t, err)

		handler := commands.NewUpdateOrderStatusCommandHandler(factory, notifier, discardLogger())
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Preparing, aggregate.Status())
		mock.AssertExpectationsForObjects(t, repo, uow, factory, notifier)
	})

	t.Run("should reject a non-forward target", func(t *testing.T) {
		aggregate := testOrder(t, testItem(t, "Latte", 450, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Completed)
		require.NoError(t, err)

		handler := commands.NewUpdateOrderStatusCommandHandler(factory, notifier, discardLogger())
		err = handler.Handle(t.Context(), cmd)

		var invalidTransition *order.InvalidTransitionError
		require.ErrorAs(t, err, &invalidTransition)
		assert.Equal(t, order.Confirmed, aggregate.Status())
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		mock.AssertExpectationsForObjects(t, repo, uow, factory)
	})

	t.Run("should surface stale state conflict from the repository", func(t *testing.T) {
		aggregate := testOrder(t, testItem(t, "Latte", 450, 1))
		conflict := errs.NewStaleStateError("order", aggregate.ID(), order.Confirmed.String())

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil),
			repo.On("Update", mock.Anything, aggregate).Return(conflict),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Preparing)
		require.NoError(t, err)

		handler := commands.NewUpdateOrderStatusCommandHandler(factory, notifier, discardLogger())
		err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrStaleState)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		mock.AssertExpectationsForObjects(t, repo, uow, factory)
	})

	t.Run("should reject an invalid target at construction", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(testOrder(t, testItem(t, "Latte", 450, 1)).ID(), order.Status(99))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
