package kernel_test

import (
	"testing"

	"pos/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money with valid amount", func(t *testing.T) {
		m, err := kernel.NewMoney(35000)

		require.NoError(t, err)
		assert.Equal(t, int64(35000), m.Amount())
		require.NoError(t, m.Validate())
	})

	t.Run("should create zero money", func(t *testing.T) {
		m, err := kernel.NewMoney(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount is invalid")
	})
}

func TestZeroMoney(t *testing.T) {
	t.Run("zero value equals ZeroMoney", func(t *testing.T) {
		var m kernel.Money

		assert.True(t, m.IsEqual(kernel.ZeroMoney()))
		require.NoError(t, m.Validate())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("Add sums amounts", func(t *testing.T) {
		a, _ := kernel.NewMoney(100)
		b, _ := kernel.NewMoney(250)

		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.Equal(t, int64(350), sum.Amount())
	})

	t.Run("Sub subtracts amounts", func(t *testing.T) {
		a, _ := kernel.NewMoney(250)
		b, _ := kernel.NewMoney(100)

		diff, err := a.Sub(b)

		require.NoError(t, err)
		assert.Equal(t, int64(150), diff.Amount())
	})

	t.Run("Sub fails below zero", func(t *testing.T) {
		a, _ := kernel.NewMoney(100)
		b, _ := kernel.NewMoney(250)

		_, err := a.Sub(b)

		require.Error(t, err)
	})

	t.Run("MulInt multiplies by quantity", func(t *testing.T) {
		price, _ := kernel.NewMoney(35000)

		subtotal, err := price.MulInt(3)

		require.NoError(t, err)
		assert.Equal(t, int64(105000), subtotal.Amount())
	})

	t.Run("MulInt rejects negative factor", func(t *testing.T) {
		price, _ := kernel.NewMoney(35000)

		_, err := price.MulInt(-2)

		require.Error(t, err)
	})
}

func TestMoney_Comparison(t *testing.T) {
	t.Run("GreaterThan", func(t *testing.T) {
		a, _ := kernel.NewMoney(200)
		b, _ := kernel.NewMoney(100)

		assert.True(t, a.GreaterThan(b))
		assert.False(t, b.GreaterThan(a))
		assert.False(t, a.GreaterThan(a))
	})

	t.Run("IsEqual", func(t *testing.T) {
		a, _ := kernel.NewMoney(200)
		b, _ := kernel.NewMoney(200)

		assert.True(t, a.IsEqual(b))
	})
}
