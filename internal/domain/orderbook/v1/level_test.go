package orderbookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOrder(id uint64, side Side, price, quantity int64) *Order {
	o := NewOrder(side, KindLimit, price, quantity)
	o.ID = id
	o.Sequence = id
	return o
}

func TestNewLevel(t *testing.T) {
	lvl := NewLevel(10_000)

	assert.Equal(t, int64(10_000), lvl.Price)
	assert.True(t, lvl.IsEmpty())
	assert.Equal(t, 0, lvl.OrderCount())
	assert.Equal(t, int64(0), lvl.TotalQuantity())
	assert.Nil(t, lvl.Front())
}

func TestLevel_Enqueue(t *testing.T) {
	lvl := NewLevel(10_000)

	o1 := makeOrder(1, SideBuy, 10_000, 10)
	o2 := makeOrder(2, SideBuy, 10_000, 5)

	require.NoError(t, lvl.Enqueue(o1))
	require.NoError(t, lvl.Enqueue(o2))

	assert.Equal(t, 2, lvl.OrderCount())
	assert.Equal(t, int64(15), lvl.TotalQuantity())
	assert.Equal(t, o1, lvl.Front()) // FIFO: first in is first out
	assert.Equal(t, lvl, o1.Level())
}

func TestLevel_Enqueue_Invalid(t *testing.T) {
	lvl := NewLevel(10_000)

	err := lvl.Enqueue(nil)
	assert.ErrorIs(t, err, ErrNilOrder)

	zero := makeOrder(1, SideBuy, 10_000, 10)
	zero.Remaining = 0
	err = lvl.Enqueue(zero)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestLevel_Unlink_Middle(t *testing.T) {
	lvl := NewLevel(10_000)

	o1 := makeOrder(1, SideBuy, 10_000, 10)
	o2 := makeOrder(2, SideBuy, 10_000, 20)
	o3 := makeOrder(3, SideBuy, 10_000, 30)
	require.NoError(t, lvl.Enqueue(o1))
	require.NoError(t, lvl.Enqueue(o2))
	require.NoError(t, lvl.Enqueue(o3))

	require.NoError(t, lvl.Unlink(o2))

	assert.Equal(t, 2, lvl.OrderCount())
	assert.Equal(t, int64(40), lvl.TotalQuantity())
	assert.Equal(t, []*Order{o1, o3}, lvl.Orders())
	assert.Nil(t, o2.Level())
}

func TestLevel_Unlink_HeadAndTail(t *testing.T) {
	lvl := NewLevel(10_000)

	o1 := makeOrder(1, SideSell, 10_000, 10)
	o2 := makeOrder(2, SideSell, 10_000, 20)
	require.NoError(t, lvl.Enqueue(o1))
	require.NoError(t, lvl.Enqueue(o2))

	require.NoError(t, lvl.Unlink(o1))
	assert.Equal(t, o2, lvl.Front())

	require.NoError(t, lvl.Unlink(o2))
	assert.True(t, lvl.IsEmpty())
	assert.Nil(t, lvl.Front())
	assert.Equal(t, int64(0), lvl.TotalQuantity())
}

func TestLevel_Unlink_NotInLevel(t *testing.T) {
	lvl := NewLevel(10_000)
	other := NewLevel(10_100)

	o := makeOrder(1, SideBuy, 10_100, 10)
	require.NoError(t, other.Enqueue(o))

	err := lvl.Unlink(o)
	assert.ErrorIs(t, err, ErrOrderNotInLevel)
}

func TestLevel_FIFOOrdering(t *testing.T) {
	lvl := NewLevel(10_000)

	var want []*Order
	for i := uint64(1); i <= 5; i++ {
		o := makeOrder(i, SideBuy, 10_000, int64(i))
		require.NoError(t, lvl.Enqueue(o))
		want = append(want, o)
	}

	assert.Equal(t, want, lvl.Orders())
}

func TestLevel_Validate(t *testing.T) {
	lvl := NewLevel(10_000)
	o := makeOrder(1, SideBuy, 10_000, 10)
	require.NoError(t, lvl.Enqueue(o))

	assert.NoError(t, lvl.Validate())

	// a partial fill keeps the aggregate in sync
	o.Remaining -= 4
	lvl.ReduceQuantity(4)
	assert.NoError(t, lvl.Validate())

	// corrupting the order quantity is detected
	o.Remaining = -1
	assert.Error(t, lvl.Validate())
}

func TestTrade_Notional(t *testing.T) {
	trade := Trade{Price: 10_000, Quantity: 7}
	assert.Equal(t, int64(70_000), trade.Notional())
}

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, SideBuy, SideSell.Opposite())
}

func TestOrder_Accessors(t *testing.T) {
	o := NewOrder(SideBuy, KindLimit, 10_000, 25)

	assert.True(t, o.IsBuy())
	assert.False(t, o.IsSell())
	assert.False(t, o.IsFilled())
	assert.Equal(t, int64(0), o.Filled())

	o.Remaining = 0
	assert.True(t, o.IsFilled())
	assert.Equal(t, int64(25), o.Filled())
}
