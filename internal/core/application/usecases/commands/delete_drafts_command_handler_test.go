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

func TestDeleteDraftsCommandHandler(t *testing.T) {
	cutoff := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	newCommand := func(t *testing.T) commands.DeleteDraftsCommand {
		t.Helper()
		cmd, err := commands.NewDeleteDraftsCommand(cutoff)
		require.NoError(t, err)
		return cmd
	}

	t.Run("should delete drafts older than the cutoff", func(t *testing.T) {
		first := testDraftOrder(t, "table-1", testItem(t, "Latte", 450, 1))
		second := testDraftOrder(t, "table-2")

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("GetDraftsOlderThan", mock.Anything, cutoff).
				Return([]*order.Order{first, second}, nil),
			repo.On("DeleteByIDs", mock.Anything, []kernel.UUID{first.ID(), second.ID()}).Return(nil),
			uow.On("Commit", mock.Anything).Return(nil),
			notifier.On("Publish", mock.Anything, ports.EventDraftsDeleted).Return(nil).Times(2),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		handler := commands.NewDeleteDraftsCommandHandler(factory, notifier, discardLogger())
		count, err := handler.Handle(t.Context(), newCommand(t))

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		mock.AssertExpectationsForObjects(t, repo, uow, factory, notifier)
	})

	t.Run("should publish one event per session key with its deleted ids", func(t *testing.T) {
		firstShared := testDraftOrder(t, "session-a", testItem(t, "Latte", 450, 1))
		secondShared := testDraftOrder(t, "session-a")
		other := testDraftOrder(t, "session-b", testItem(t, "Mocha", 500, 2))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(repo)
		repo.On("GetDraftsOlderThan", mock.Anything, cutoff).
			Return([]*order.Order{firstShared, secondShared, other}, nil)
		repo.On("DeleteByIDs", mock.Anything,
			[]kernel.UUID{firstShared.ID(), secondShared.ID(), other.ID()}).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		notifier.On("Publish", mock.Anything, ports.EventDraftsDeleted).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		handler := commands.NewDeleteDraftsCommandHandler(factory, notifier, discardLogger())
		count, err := handler.Handle(t.Context(), newCommand(t))

		require.NoError(t, err)
		assert.Equal(t, 3, count)

		require.Len(t, notifier.Events, 2)
		assert.Equal(t, ports.EventDraftsDeleted, notifier.Events[0].Kind)
		assert.Equal(t, "session-a", notifier.Events[0].Payload["session_key"])
		assert.Equal(t, []string{firstShared.ID().String(), secondShared.ID().String()},
			notifier.Events[0].Payload["order_ids"])
		assert.Equal(t, "session-b", notifier.Events[1].Payload["session_key"])
		assert.Equal(t, []string{other.ID().String()},
			notifier.Events[1].Payload["order_ids"])
	})

	t.Run("should succeed without event when nothing is stale", func(t *testing.T) {
		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(repo)
		repo.On("GetDraftsOlderThan", mock.Anything, cutoff).Return([]*order.Order{}, nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		handler := commands.NewDeleteDraftsCommandHandler(factory, notifier, discardLogger())
		count, err := handler.Handle(t.Context(), newCommand(t))

		require.NoError(t, err)
		assert.Zero(t, count)
		repo.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		mock.AssertExpectationsForObjects(t, repo, uow, factory)
	})

	t.Run("should reject a zero cutoff at construction", func(t *testing.T) {
		_, err := commands.NewDeleteDraftsCommand(time.Time{})

		require.Error(t, err)
	})
}
