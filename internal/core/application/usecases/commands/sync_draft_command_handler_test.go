package commands_test

import (
	"testing"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSyncDraftCommandHandler(t *testing.T) {
	cartItems := []commands.ItemInput{
		{ProductID: kernel.NewUUID(), Name: "Latte", Price: 450, Quantity: 2},
		{ProductID: kernel.NewUUID(), Name: "Croissant", Price: 350, Quantity: 1},
	}

	newCommand := func(t *testing.T, sessionKey string, items []commands.ItemInput) commands.SyncDraftCommand {
		t.Helper()
		cmd, err := commands.NewSyncDraftCommand(kernel.NewUUID(), sessionKey,
			order.CustomerCreator, "", order.CustomerInfo{Table: "7"}, order.Cash, items)
		require.NoError(t, err)
		return cmd
	}

	t.Run("should create draft on first sync", func(t *testing.T) {
		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("GetDraftBySessionKey", mock.Anything, "table-7").
				Return(nil, errs.NewObjectNotFoundError("draft", "table-7")),
			repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil),
			uow.On("Commit", mock.Anything).Return(nil),
			notifier.On("Publish", mock.Anything, ports.EventOrderCreated).Return(nil),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		handler := commands.NewSyncDraftCommandHandler(factory, notifier, discardLogger())
		draft, err := handler.Handle(t.Context(), newCommand(t, "table-7", cartItems))

		require.NoError(t, err)
		require.NotNil(t, draft)
		assert.Equal(t, order.Creating, draft.Status())
		assert.Len(t, draft.Items(), 2)
		assert.Equal(t, int64(1250), draft.TotalAmount().Amount())
		mock.AssertExpectationsForObjects(t, repo, uow, factory, notifier)
	})

	t.Run("should replace items of existing draft", func(t *testing.T) {
		existing := testDraftOrder(t, "table-7", testItem(t, "Espresso", 300, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("GetDraftBySessionKey", mock.Anything, "table-7").Return(existing, nil),
			repo.On("Update", mock.Anything, existing).Return(nil),
			uow.On("Commit", mock.Anything).Return(nil),
			notifier.On("Publish", mock.Anything, ports.EventOrderUpdated).Return(nil),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		handler := commands.NewSyncDraftCommandHandler(factory, notifier, discardLogger())
		draft, err := handler.Handle(t.Context(), newCommand(t, "table-7", cartItems))

		require.NoError(t, err)
		assert.Same(t, existing, draft)
		assert.Len(t, draft.Items(), 2)
		assert.Equal(t, int64(1250), draft.TotalAmount().Amount())
		mock.AssertExpectationsForObjects(t, repo, uow, factory, notifier)
	})

	t.Run("should accept empty cart as cleared draft", func(t *testing.T) {
		existing := testDraftOrder(t, "table-7", testItem(t, "Espresso", 300, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(repo)
		repo.On("GetDraftBySessionKey", mock.Anything, "table-7").Return(existing, nil)
		repo.On("Update", mock.Anything, existing).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		notifier.On("Publish", mock.Anything, ports.EventOrderUpdated).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		handler := commands.NewSyncDraftCommandHandler(factory, notifier, discardLogger())
		draft, err := handler.Handle(t.Context(), newCommand(t, "table-7", nil))

		require.NoError(t, err)
		assert.Empty(t, draft.Items())
		assert.Equal(t, int64(0), draft.TotalAmount().Amount())
		mock.AssertExpectationsForObjects(t, repo, uow, factory, notifier)
	})

	t.Run("should derive session key when none is given", func(t *testing.T) {
		derived := order.DeriveSessionKey(order.CustomerCreator, "")

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(repo)
		repo.On("GetDraftBySessionKey", mock.Anything, derived).
			Return(nil, errs.NewObjectNotFoundError("draft", derived))
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		notifier.On("Publish", mock.Anything, ports.EventOrderCreated).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		handler := commands.NewSyncDraftCommandHandler(factory, notifier, discardLogger())
		draft, err := handler.Handle(t.Context(), newCommand(t, "", cartItems))

		require.NoError(t, err)
		assert.Equal(t, derived, draft.SessionKey())
		mock.AssertExpectationsForObjects(t, repo, uow, factory, notifier)
	})

	t.Run("should fail when draft lookup fails", func(t *testing.T) {
		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("GetDraftBySessionKey", mock.Anything, "table-7").Return(nil, errNotImplemented),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		handler := commands.NewSyncDraftCommandHandler(factory, notifier, discardLogger())
		draft, err := handler.Handle(t.Context(), newCommand(t, "table-7", cartItems))

		require.ErrorIs(t, err, errNotImplemented)
		assert.Nil(t, draft)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		mock.AssertExpectationsForObjects(t, repo, uow, factory)
	})

	t.Run("should fail and roll back when commit fails", func(t *testing.T) {
		existing := testDraftOrder(t, "table-7", testItem(t, "Espresso", 300, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil),
			uow.On("OrderRepository").Return(repo),
			repo.On("GetDraftBySessionKey", mock.Anything, "table-7").Return(existing, nil),
			repo.On("Update", mock.Anything, existing).Return(nil),
			uow.On("Commit", mock.Anything).Return(errNotImplemented),
			uow.On("Rollback", mock.Anything).Return(nil),
		)

		handler := commands.NewSyncDraftCommandHandler(factory, notifier, discardLogger())
		draft, err := handler.Handle(t.Context(), newCommand(t, "table-7", cartItems))

		require.ErrorIs(t, err, errNotImplemented)
		assert.Nil(t, draft)
		notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		mock.AssertExpectationsForObjects(t, repo, uow, factory)
	})

	t.Run("should still succeed when event publication fails", func(t *testing.T) {
		existing := testDraftOrder(t, "table-7", testItem(t, "Espresso", 300, 1))

		repo := &MockOrderRepository{}
		uow := &MockOrderUoW{}
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(repo)
		repo.On("GetDraftBySessionKey", mock.Anything, "table-7").Return(existing, nil)
		repo.On("Update", mock.Anything, existing).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		notifier.On("Publish", mock.Anything, ports.EventOrderUpdated).Return(errNotImplemented)
		uow.On("Rollback", mock.Anything).Return(nil)

		handler := commands.NewSyncDraftCommandHandler(factory, notifier, discardLogger())
		draft, err := handler.Handle(t.Context(), newCommand(t, "table-7", cartItems))

		require.NoError(t, err)
		require.NotNil(t, draft)
		mock.AssertExpectationsForObjects(t, repo, uow, factory, notifier)
	})

	t.Run("should fail with non-constructed command", func(t *testing.T) {
		factory := &MockOrderUoWFactory{}
		notifier := &MockNotifier{}

		handler := commands.NewSyncDraftCommandHandler(factory, notifier, discardLogger())
		draft, err := handler.Handle(t.Context(), commands.SyncDraftCommand{})

		require.ErrorIs(t, err, commands.ErrSyncDraftCommandIsNotConstructed)
		assert.Nil(t, draft)
		factory.AssertNotCalled(t, "Create")
	})
}
