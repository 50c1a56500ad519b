package order_test

import (
	"testing"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemIDs(items ...*order.Item) []kernel.UUID {
	ids := make([]kernel.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID()
	}
	return ids
}

func TestOrder_Split(t *testing.T) {
	newSource := func(t *testing.T) (*order.Order, []*order.Item) {
		t.Helper()
		items := []*order.Item{
			newTestItem(t, "Latte", 35000, 2),
			newTestItem(t, "Mocha", 40000, 1),
			newTestItem(t, "Croissant", 25000, 3),
		}
		return newStaffOrder(t, items...), items
	}

	t.Run("should split into new Confirmed orders and close the source", func(t *testing.T) {
		source, items := newSource(t)
		sourceTotal := source.TotalAmount()

		children, err := source.Split([]order.SplitSpec{
			{Name: "table 5 left side", ItemIDs: itemIDs(items[0], items[1])},
			{Name: "table 5 right side", ItemIDs: itemIDs(items[2])},
		}, "staff-9", testTime)

		require.NoError(t, err)
		require.Len(t, children, 2)

		for _, child := range children {
			require.NoError(t, child.Validate())
			assert.Equal(t, order.Confirmed, child.Status())
			assert.Equal(t, order.PaymentPending, child.PaymentStatus())
			assert.NotEmpty(t, child.OrderNumber())
		}

		assert.Equal(t, order.Cancelled, source.Status())
		assert.Empty(t, source.Items())
		require.NotNil(t, source.Cancellation())
		assert.Equal(t, "split into 2 orders", source.Cancellation().Reason)
		assert.Equal(t, order.OtherReason, source.Cancellation().ReasonType)
		assert.Nil(t, source.Cancellation().RefundAmount)

		// Historical record: the closed source keeps its pre-split total.
		assert.True(t, source.TotalAmount().IsEqual(sourceTotal))
	})

	t.Run("should conserve item count and total amount exactly", func(t *testing.T) {
		source, items := newSource(t)
		sourceTotal := source.TotalAmount()
		sourceCount := len(source.Items())

		children, err := source.Split([]order.SplitSpec{
			{ItemIDs: itemIDs(items[0])},
			{ItemIDs: itemIDs(items[1], items[2])},
		}, "staff-9", testTime)
		require.NoError(t, err)

		childTotal := kernel.ZeroMoney()
		childCount := 0
		for _, child := range children {
			sum, addErr := childTotal.Add(child.TotalAmount())
			require.NoError(t, addErr)
			childTotal = sum
			childCount += len(child.Items())
		}

		assert.True(t, childTotal.IsEqual(sourceTotal),
			"children total %s should equal source total %s", childTotal, sourceTotal)
		assert.Equal(t, sourceCount, childCount)
	})

	t.Run("should move items by reference without recomputing subtotals", func(t *testing.T) {
		source, items := newSource(t)
		require.NoError(t, items[0].AdjustSubtotal(mustMoney(t, 60000)))

		children, err := source.Split([]order.SplitSpec{
			{ItemIDs: itemIDs(items[0])},
			{ItemIDs: itemIDs(items[1], items[2])},
		}, "staff-9", testTime)

		require.NoError(t, err)
		require.Len(t, children[0].Items(), 1)
		assert.Same(t, items[0], children[0].Items()[0])
		assert.Equal(t, int64(60000), children[0].TotalAmount().Amount())
	})

	t.Run("should carry the source context and label the split names", func(t *testing.T) {
		source, items := newSource(t)

		children, err := source.Split([]order.SplitSpec{
			{Name: "Anna", ItemIDs: itemIDs(items[0])},
			{ItemIDs: itemIDs(items[1], items[2])},
		}, "staff-9", testTime)

		require.NoError(t, err)
		assert.Equal(t, "5", children[0].Customer().Table)
		assert.Contains(t, children[0].Customer().Notes, "split: Anna")
		assert.NotContains(t, children[1].Customer().Notes, "split:")
		assert.Equal(t, order.Cash, children[0].PaymentMethod())
		assert.Equal(t, order.StaffCreator, children[0].Creator())
	})

	t.Run("should reject fewer than two splits", func(t *testing.T) {
		source, items := newSource(t)

		_, err := source.Split([]order.SplitSpec{
			{ItemIDs: itemIDs(items...)},
		}, "staff-9", testTime)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 2 required")
		assert.Equal(t, order.Confirmed, source.Status())
	})

	t.Run("should reject a split leaving items unassigned", func(t *testing.T) {
		source, items := newSource(t)

		_, err := source.Split([]order.SplitSpec{
			{ItemIDs: itemIDs(items[0])},
			{ItemIDs: itemIDs(items[1])},
		}, "staff-9", testTime)

		require.ErrorIs(t, err, order.ErrPartitionMismatch)
		assert.Equal(t, order.Confirmed, source.Status())
		assert.Len(t, source.Items(), 3)
	})

	t.Run("should reject an item assigned to more than one split", func(t *testing.T) {
		source, items := newSource(t)

		_, err := source.Split([]order.SplitSpec{
			{ItemIDs: itemIDs(items[0], items[1])},
			{ItemIDs: itemIDs(items[1], items[2])},
		}, "staff-9", testTime)

		require.ErrorIs(t, err, order.ErrPartitionMismatch)
	})

	t.Run("should reject a foreign item id", func(t *testing.T) {
		source, items := newSource(t)
		foreign := newTestItem(t, "Tea", 20000, 1)

		_, err := source.Split([]order.SplitSpec{
			{ItemIDs: itemIDs(items[0], items[1], items[2])},
			{ItemIDs: itemIDs(foreign)},
		}, "staff-9", testTime)

		require.ErrorIs(t, err, order.ErrPartitionMismatch)
	})

	t.Run("should reject an empty split", func(t *testing.T) {
		source, items := newSource(t)

		_, err := source.Split([]order.SplitSpec{
			{ItemIDs: itemIDs(items...)},
			{},
		}, "staff-9", testTime)

		require.ErrorIs(t, err, order.ErrPartitionMismatch)
	})

	t.Run("should reject splitting an order that is not in progress", func(t *testing.T) {
		item := newTestItem(t, "Latte", 35000, 2)
		source := newCustomerOrder(t, item)

		_, err := source.Split([]order.SplitSpec{
			{ItemIDs: itemIDs(item)},
			{ItemIDs: itemIDs(item)},
		}, "staff-9", testTime)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "only in-progress orders")
	})

	t.Run("should require the splitter identity", func(t *testing.T) {
		source, items := newSource(t)

		_, err := source.Split([]order.SplitSpec{
			{ItemIDs: itemIDs(items[0])},
			{ItemIDs: itemIDs(items[1], items[2])},
		}, "", testTime)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "split by")
	})
}

func TestMergeOrders(t *testing.T) {
	t.Run("should absorb all items into one new order and close the sources", func(t *testing.T) {
		itemA := newTestItem(t, "Latte", 35000, 2)
		itemB := newTestItem(t, "Croissant", 25000, 1)
		a := newStaffOrder(t, itemA)
		b := newStaffOrder(t, itemB)

		merged, err := order.MergeOrders([]*order.Order{a, b}, "family table", "staff-9", testTime)

		require.NoError(t, err)
		require.NoError(t, merged.Validate())
		assert.Len(t, merged.Items(), 2)
		assert.Equal(t, int64(95000), merged.TotalAmount().Amount())
		assert.Contains(t, merged.Customer().Notes, "merged: family table")

		for _, source := range []*order.Order{a, b} {
			assert.Equal(t, order.Cancelled, source.Status())
			assert.Empty(t, source.Items())
			require.NotNil(t, source.Cancellation())
			assert.Equal(t, "merged into order "+merged.OrderNumber(), source.Cancellation().Reason)
			assert.Nil(t, source.Cancellation().RefundAmount)
		}
	})

	t.Run("should take the most advanced status among the sources", func(t *testing.T) {
		a := newStaffOrder(t, newTestItem(t, "Latte", 35000, 1))
		b := newStaffOrder(t, newTestItem(t, "Mocha", 40000, 1))
		c := newStaffOrder(t, newTestItem(t, "Tea", 20000, 1))
		advanceTo(t, b, order.Ready)
		advanceTo(t, c, order.Preparing)

		merged, err := order.MergeOrders([]*order.Order{a, b, c}, "", "staff-9", testTime)

		require.NoError(t, err)
		assert.Equal(t, order.Ready, merged.Status())
	})

	t.Run("should take customer and payment context from the first source", func(t *testing.T) {
		a := newStaffOrder(t, newTestItem(t, "Latte", 35000, 1))
		b := newStaffOrder(t, newTestItem(t, "Mocha", 40000, 1))

		merged, err := order.MergeOrders([]*order.Order{a, b}, "", "staff-9", testTime)

		require.NoError(t, err)
		assert.Equal(t, a.Customer().Table, merged.Customer().Table)
		assert.Equal(t, a.PaymentMethod(), merged.PaymentMethod())
		assert.Equal(t, a.Creator(), merged.Creator())
		assert.Equal(t, order.PaymentPending, merged.PaymentStatus())
	})

	t.Run("should conserve item count and total amount exactly", func(t *testing.T) {
		a := newStaffOrder(t, newTestItem(t, "Latte", 35000, 2), newTestItem(t, "Tea", 20000, 1))
		b := newStaffOrder(t, newTestItem(t, "Mocha", 40000, 3))
		wantTotal, err := a.TotalAmount().Add(b.TotalAmount())
		require.NoError(t, err)
		wantCount := len(a.Items()) + len(b.Items())

		merged, err := order.MergeOrders([]*order.Order{a, b}, "", "staff-9", testTime)

		require.NoError(t, err)
		assert.True(t, merged.TotalAmount().IsEqual(wantTotal))
		assert.Len(t, merged.Items(), wantCount)
	})

	t.Run("should reject a source that is not in progress", func(t *testing.T) {
		a := newStaffOrder(t, newTestItem(t, "Latte", 35000, 1))
		pending := newCustomerOrder(t, newTestItem(t, "Mocha", 40000, 1))

		merged, err := order.MergeOrders([]*order.Order{a, pending}, "", "staff-9", testTime)

		require.ErrorIs(t, err, order.ErrIncompatibleMerge)
		assert.Nil(t, merged)

		var mergeErr *order.IncompatibleMergeError
		require.ErrorAs(t, err, &mergeErr)
		assert.True(t, mergeErr.OrderID.IsEqual(pending.ID()))
		assert.Equal(t, order.Pending, mergeErr.Status)

		// No source was touched.
		assert.Equal(t, order.Confirmed, a.Status())
		assert.Len(t, a.Items(), 1)
	})

	t.Run("should reject a held source", func(t *testing.T) {
		a := newStaffOrder(t, newTestItem(t, "Latte", 35000, 1))
		held := newStaffOrder(t, newTestItem(t, "Mocha", 40000, 1))
		require.NoError(t, held.PlaceOnHold("", "staff-9", testTime))

		_, err := order.MergeOrders([]*order.Order{a, held}, "", "staff-9", testTime)

		require.ErrorIs(t, err, order.ErrIncompatibleMerge)
	})

	t.Run("should reject fewer than two sources", func(t *testing.T) {
		a := newStaffOrder(t, newTestItem(t, "Latte", 35000, 1))

		_, err := order.MergeOrders([]*order.Order{a}, "", "staff-9", testTime)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 2 required")
	})

	t.Run("should reject a duplicated source", func(t *testing.T) {
		a := newStaffOrder(t, newTestItem(t, "Latte", 35000, 1))

		_, err := order.MergeOrders([]*order.Order{a, a}, "", "staff-9", testTime)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listed more than once")
	})

	t.Run("should require the merger identity", func(t *testing.T) {
		a := newStaffOrder(t, newTestItem(t, "Latte", 35000, 1))
		b := newStaffOrder(t, newTestItem(t, "Mocha", 40000, 1))

		_, err := order.MergeOrders([]*order.Order{a, b}, "", "", testTime)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "merged by")
	})
}

func TestSplitThenMerge(t *testing.T) {
	t.Run("should conserve totals across a split followed by a merge", func(t *testing.T) {
		items := []*order.Item{
			newTestItem(t, "Latte", 35000, 2),
			newTestItem(t, "Croissant", 25000, 3),
		}
		source := newStaffOrder(t, items...)
		originalTotal := source.TotalAmount()

		children, err := source.Split([]order.SplitSpec{
			{ItemIDs: itemIDs(items[0])},
			{ItemIDs: itemIDs(items[1])},
		}, "staff-9", testTime)
		require.NoError(t, err)

		merged, err := order.MergeOrders(children, "reunited", "staff-9", testTime)
		require.NoError(t, err)

		assert.True(t, merged.TotalAmount().IsEqual(originalTotal))
		assert.Len(t, merged.Items(), len(items))
	})
}
