package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDraftBySessionKey(ctx context.Context, sessionKey string) (*order.Order, error) {
	args := m.Called(ctx, sessionKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) DeleteByIDs(ctx context.Context, ids []kernel.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockOrderRepository) AddReturn(ctx context.Context, record *order.ReturnRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOrderRepository) GetReturnsForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.ReturnRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.ReturnRecord), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// MockNotifier records every published event so tests can assert payload
// contents, while call expectations stay keyed by event kind.
type MockNotifier struct {
	mock.Mock
	Events []ports.Event
}

func (m *MockNotifier) Publish(ctx context.Context, event ports.Event) error {
	m.Events = append(m.Events, event)
	args := m.Called(ctx, event.Kind)
	return args.Error(0)
}

func (m *MockNotifier) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockIdentityProvider struct{ mock.Mock }

func (m *MockIdentityProvider) Identify(ctx context.Context, token string) (ports.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(ports.Identity), args.Error(1)
}

type MockStockAdjuster struct{ mock.Mock }

func (m *MockStockAdjuster) Deduct(ctx context.Context, lines []ports.StockLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockStockAdjuster) Restock(ctx context.Context, lines []ports.StockLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

type MockPaymentVerifier struct{ mock.Mock }

func (m *MockPaymentVerifier) Verify(ctx context.Context, orderID kernel.UUID, reference string) (bool, error) {
	args := m.Called(ctx, orderID, reference)
	return args.Bool(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errNotImplemented = errors.New("not implemented in mock")

var testStaff = ports.Identity{ID: "staff-9", Name: "Alice", Role: "manager"}

func testItem(t *testing.T, name string, price int64, quantity int) *order.Item {
	t.Helper()
	money, err := kernel.NewMoney(price)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), name, money, quantity, "", nil, "")
	require.NoError(t, err)
	return item
}

func testOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	o, err := order.NewOrder(kernel.NewUUID(), order.NewOrderNumber(now),
		order.StaffCreator, "Alice", order.CustomerInfo{Table: "5"},
		order.Cash, items, now)
	require.NoError(t, err)
	return o
}

func testPendingOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	o, err := order.NewOrder(kernel.NewUUID(), order.NewOrderNumber(now),
		order.CustomerCreator, "", order.CustomerInfo{Table: "2"},
		order.Card, items, now)
	require.NoError(t, err)
	return o
}

func testDraftOrder(t *testing.T, sessionKey string, items ...*order.Item) *order.Order {
	t.Helper()
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	o, err := order.NewDraftOrder(kernel.NewUUID(), order.NewOrderNumber(now),
		order.CustomerCreator, "", sessionKey, order.CustomerInfo{},
		order.Cash, items, now)
	require.NoError(t, err)
	return o
}
