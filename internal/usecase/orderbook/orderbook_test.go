package orderbook

import (
	"math/rand/v2"
	"testing"

	orderbookv1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/orderbook/v1"
	"github.com/abhatnagar21/HFT-Simulator/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertNotCrossed checks the global invariant: whenever both sides are
// non-empty, best bid is strictly below best ask.
func assertNotCrossed(t *testing.T, b *Book) {
	t.Helper()
	bid, hasBid := b.BestBid()
	ask, hasAsk := b.BestAsk()
	if hasBid && hasAsk {
		assert.Less(t, bid, ask, "book is crossed: bid %d >= ask %d", bid, ask)
	}
}

func TestNewBook(t *testing.T) {
	b := NewBook()

	_, hasBid := b.BestBid()
	_, hasAsk := b.BestAsk()
	assert.False(t, hasBid)
	assert.False(t, hasAsk)
	assert.Equal(t, 0, b.OpenOrders())
	assert.Equal(t, uint64(0), b.TradeCount())
}

func TestBook_SubmitLimit_Rests(t *testing.T) {
	b := NewBook()

	res, err := b.SubmitLimit(orderbookv1.SideBuy, 10_000, 50)
	require.NoError(t, err)

	assert.NotZero(t, res.OrderID)
	assert.Empty(t, res.Trades)
	assert.Equal(t, int64(50), res.Remaining)

	bid, ok := b.BestBid()
	require.True(t, ok)
	assert.Equal(t, int64(10_000), bid)
	assert.Equal(t, int64(50), b.BidVolume())
	assert.Equal(t, 1, b.OpenOrders())
}

func TestBook_SubmitLimit_Validation(t *testing.T) {
	b := NewBook()

	tests := []struct {
		name     string
		side     orderbookv1.Side
		price    int64
		quantity int64
		code     errors.ErrorCode
	}{
		{"zero price", orderbookv1.SideBuy, 0, 10, errors.OrderInvalidPrice},
		{"negative price", orderbookv1.SideSell, -5, 10, errors.OrderInvalidPrice},
		{"zero quantity", orderbookv1.SideBuy, 100, 0, errors.OrderInvalidQuantity},
		{"negative quantity", orderbookv1.SideSell, 100, -1, errors.OrderInvalidQuantity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.SubmitLimit(tc.side, tc.price, tc.quantity)
			require.Error(t, err)
			assert.True(t, errors.ErrorCodeEquals(err, string(tc.code)))
		})
	}

	// rejected orders leave no state behind
	assert.Equal(t, 0, b.OpenOrders())
	assert.Equal(t, int64(0), b.BidVolume())
	assert.Equal(t, int64(0), b.AskVolume())
}

func TestBook_SubmitMarket_Validation(t *testing.T) {
	b := NewBook()

	_, err := b.SubmitMarket(orderbookv1.SideBuy, 0)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.OrderInvalidQuantity)))
}

// Scenario A: empty book; bid 10x100 then ask 10x60 produce one trade at
// the maker's price with the bid left partially filled.
func TestBook_ScenarioA_PartialFillAtMakerPrice(t *testing.T) {
	b := NewBook()

	bidRes, err := b.SubmitLimit(orderbookv1.SideBuy, 10, 100)
	require.NoError(t, err)
	require.Empty(t, bidRes.Trades)

	askRes, err := b.SubmitLimit(orderbookv1.SideSell, 10, 60)
	require.NoError(t, err)

	require.Len(t, askRes.Trades, 1)
	trade := askRes.Trades[0]
	assert.Equal(t, int64(10), trade.Price)
	assert.Equal(t, int64(60), trade.Quantity)
	assert.Equal(t, bidRes.OrderID, trade.BuyOrderID)
	assert.Equal(t, askRes.OrderID, trade.SellOrderID)
	assert.Equal(t, int64(0), askRes.Remaining)

	bid, ok := b.BestBid()
	require.True(t, ok)
	assert.Equal(t, int64(10), bid)
	assert.Equal(t, int64(40), b.BidVolume())

	_, hasAsk := b.BestAsk()
	assert.False(t, hasAsk, "ask side should be empty")
	assertNotCrossed(t, b)
}

// Scenario B: market sell 150 against a resting bid 10x100 fills 100 and
// returns the remainder instead of silently dropping it.
func TestBook_ScenarioB_MarketOrderUnfilledRemainder(t *testing.T) {
	b := NewBook()

	bidRes, err := b.SubmitLimit(orderbookv1.SideBuy, 10, 100)
	require.NoError(t, err)

	res, err := b.SubmitMarket(orderbookv1.SideSell, 150)
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	assert.Equal(t, int64(10), res.Trades[0].Price)
	assert.Equal(t, int64(100), res.Trades[0].Quantity)
	assert.Equal(t, bidRes.OrderID, res.Trades[0].BuyOrderID)
	assert.Equal(t, int64(50), res.Unfilled)

	_, hasBid := b.BestBid()
	_, hasAsk := b.BestAsk()
	assert.False(t, hasBid, "bid fully consumed")
	assert.False(t, hasAsk, "ask side untouched and still empty")
	assert.Equal(t, 0, b.OpenOrders())
}

// Scenario C: cancellation is by identity; a duplicate (price, quantity)
// order must survive the cancel of its twin.
func TestBook_ScenarioC_CancelPrecision(t *testing.T) {
	b := NewBook()

	first, err := b.SubmitLimit(orderbookv1.SideBuy, 10, 50)
	require.NoError(t, err)
	second, err := b.SubmitLimit(orderbookv1.SideBuy, 10, 50)
	require.NoError(t, err)

	require.NoError(t, b.Cancel(first.OrderID))

	assert.Equal(t, 1, b.OpenOrders())
	assert.Equal(t, int64(50), b.BidVolume())

	depth := b.Depth(orderbookv1.SideBuy, 1)
	require.Len(t, depth, 1)
	assert.Equal(t, int64(10), depth[0].Price)
	assert.Equal(t, int64(50), depth[0].Quantity)
	assert.Equal(t, 1, depth[0].Orders)

	// the survivor is the second order: cancelling it empties the book
	require.NoError(t, b.Cancel(second.OrderID))
	assert.Equal(t, 0, b.OpenOrders())
}

// Scenario D: the resting ask sets the price when a higher bid crosses it.
func TestBook_ScenarioD_MakerSetsPrice(t *testing.T) {
	b := NewBook()

	askRes, err := b.SubmitLimit(orderbookv1.SideSell, 9, 30)
	require.NoError(t, err)

	bidRes, err := b.SubmitLimit(orderbookv1.SideBuy, 10, 30)
	require.NoError(t, err)

	require.Len(t, bidRes.Trades, 1)
	trade := bidRes.Trades[0]
	assert.Equal(t, int64(9), trade.Price, "trade must execute at the resting ask's price")
	assert.Equal(t, int64(30), trade.Quantity)
	assert.Equal(t, bidRes.OrderID, trade.BuyOrderID)
	assert.Equal(t, askRes.OrderID, trade.SellOrderID)

	_, hasBid := b.BestBid()
	_, hasAsk := b.BestAsk()
	assert.False(t, hasBid)
	assert.False(t, hasAsk)
}

func TestBook_Cancel_NotFound(t *testing.T) {
	b := NewBook()

	err := b.Cancel(42)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.OrderNotFound)))
}

func TestBook_Cancel_AlreadyFilled(t *testing.T) {
	b := NewBook()

	bidRes, err := b.SubmitLimit(orderbookv1.SideBuy, 10, 20)
	require.NoError(t, err)

	_, err = b.SubmitLimit(orderbookv1.SideSell, 10, 20)
	require.NoError(t, err)

	// the bid has been fully filled and evicted; cancelling it is NotFound
	err = b.Cancel(bidRes.OrderID)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.OrderNotFound)))
}

func TestBook_FIFOTieBreak(t *testing.T) {
	b := NewBook()

	first, err := b.SubmitLimit(orderbookv1.SideBuy, 10, 30)
	require.NoError(t, err)
	second, err := b.SubmitLimit(orderbookv1.SideBuy, 10, 30)
	require.NoError(t, err)

	// consumes the whole first order and half of the second
	res, err := b.SubmitMarket(orderbookv1.SideSell, 45)
	require.NoError(t, err)

	require.Len(t, res.Trades, 2)
	assert.Equal(t, first.OrderID, res.Trades[0].BuyOrderID, "earlier order fills first")
	assert.Equal(t, int64(30), res.Trades[0].Quantity)
	assert.Equal(t, second.OrderID, res.Trades[1].BuyOrderID)
	assert.Equal(t, int64(15), res.Trades[1].Quantity)

	assert.Equal(t, int64(15), b.BidVolume())
}

func TestBook_MarketOrder_WalksLevels(t *testing.T) {
	b := NewBook()

	_, err := b.SubmitLimit(orderbookv1.SideSell, 10_000, 5)
	require.NoError(t, err)
	_, err = b.SubmitLimit(orderbookv1.SideSell, 10_100, 3)
	require.NoError(t, err)
	_, err = b.SubmitLimit(orderbookv1.SideSell, 10_200, 7)
	require.NoError(t, err)

	res, err := b.SubmitMarket(orderbookv1.SideBuy, 12)
	require.NoError(t, err)

	require.Len(t, res.Trades, 3)
	assert.Equal(t, int64(10_000), res.Trades[0].Price)
	assert.Equal(t, int64(5), res.Trades[0].Quantity)
	assert.Equal(t, int64(10_100), res.Trades[1].Price)
	assert.Equal(t, int64(3), res.Trades[1].Quantity)
	assert.Equal(t, int64(10_200), res.Trades[2].Price)
	assert.Equal(t, int64(4), res.Trades[2].Quantity)
	assert.Equal(t, int64(0), res.Unfilled)

	// the partially consumed top level remains
	ask, ok := b.BestAsk()
	require.True(t, ok)
	assert.Equal(t, int64(10_200), ask)
	assert.Equal(t, int64(3), b.AskVolume())
}

func TestBook_MarketOrder_EmptyBook(t *testing.T) {
	b := NewBook()

	res, err := b.SubmitMarket(orderbookv1.SideBuy, 40)
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	assert.Equal(t, int64(40), res.Unfilled)
	assert.Equal(t, 0, b.OpenOrders())
}

func TestBook_CrossingLimit_WalksLevels(t *testing.T) {
	b := NewBook()

	a1, err := b.SubmitLimit(orderbookv1.SideSell, 100, 10)
	require.NoError(t, err)
	a2, err := b.SubmitLimit(orderbookv1.SideSell, 101, 10)
	require.NoError(t, err)
	_, err = b.SubmitLimit(orderbookv1.SideSell, 105, 10)
	require.NoError(t, err)

	// aggressive bid sweeps the two cheapest asks then rests
	res, err := b.SubmitLimit(orderbookv1.SideBuy, 102, 25)
	require.NoError(t, err)

	require.Len(t, res.Trades, 2)
	assert.Equal(t, int64(100), res.Trades[0].Price)
	assert.Equal(t, a1.OrderID, res.Trades[0].SellOrderID)
	assert.Equal(t, int64(101), res.Trades[1].Price)
	assert.Equal(t, a2.OrderID, res.Trades[1].SellOrderID)
	assert.Equal(t, int64(5), res.Remaining)

	bid, ok := b.BestBid()
	require.True(t, ok)
	assert.Equal(t, int64(102), bid)

	ask, ok := b.BestAsk()
	require.True(t, ok)
	assert.Equal(t, int64(105), ask)
	assertNotCrossed(t, b)
}

func TestBook_Depth(t *testing.T) {
	b := NewBook()

	levels := []struct {
		price    int64
		quantity int64
	}{
		{10_000, 5}, {10_100, 3}, {10_200, 7}, {10_300, 2},
	}
	for _, lv := range levels {
		_, err := b.SubmitLimit(orderbookv1.SideSell, lv.price, lv.quantity)
		require.NoError(t, err)
	}
	// second order on the best level aggregates
	_, err := b.SubmitLimit(orderbookv1.SideSell, 10_000, 4)
	require.NoError(t, err)

	depth := b.Depth(orderbookv1.SideSell, 3)
	require.Len(t, depth, 3)
	assert.Equal(t, LevelDepth{Price: 10_000, Quantity: 9, Orders: 2}, depth[0])
	assert.Equal(t, LevelDepth{Price: 10_100, Quantity: 3, Orders: 1}, depth[1])
	assert.Equal(t, LevelDepth{Price: 10_200, Quantity: 7, Orders: 1}, depth[2])

	// asking for more levels than exist returns what the side has
	all := b.Depth(orderbookv1.SideSell, 10)
	assert.Len(t, all, 4)

	assert.Empty(t, b.Depth(orderbookv1.SideBuy, 5))

	// non-positive level counts are empty snapshots, not panics
	assert.Empty(t, b.Depth(orderbookv1.SideSell, 0))
	assert.Empty(t, b.Depth(orderbookv1.SideSell, -3))
}

func TestBook_DepthOrdering_Bids(t *testing.T) {
	b := NewBook()

	for _, price := range []int64{9_800, 10_000, 9_900} {
		_, err := b.SubmitLimit(orderbookv1.SideBuy, price, 1)
		require.NoError(t, err)
	}

	depth := b.Depth(orderbookv1.SideBuy, 3)
	require.Len(t, depth, 3)
	assert.Equal(t, int64(10_000), depth[0].Price, "bids are best (highest) first")
	assert.Equal(t, int64(9_900), depth[1].Price)
	assert.Equal(t, int64(9_800), depth[2].Price)
}

func TestBook_TradeLogReplay(t *testing.T) {
	b := NewBook()

	_, err := b.SubmitLimit(orderbookv1.SideBuy, 10, 30)
	require.NoError(t, err)
	_, err = b.SubmitLimit(orderbookv1.SideSell, 10, 10)
	require.NoError(t, err)
	_, err = b.SubmitLimit(orderbookv1.SideSell, 10, 10)
	require.NoError(t, err)

	all := b.TradesSince(0)
	require.Len(t, all, 2)
	assert.Equal(t, uint64(1), all[0].Sequence)
	assert.Equal(t, uint64(2), all[1].Sequence)

	tail := b.TradesSince(1)
	require.Len(t, tail, 1)
	assert.Equal(t, uint64(2), tail[0].Sequence)

	assert.Empty(t, b.TradesSince(2))
	assert.Equal(t, uint64(2), b.TradeCount())
}

func TestBook_CancelRemovesEmptyLevel(t *testing.T) {
	b := NewBook()

	res, err := b.SubmitLimit(orderbookv1.SideSell, 10_000, 5)
	require.NoError(t, err)
	_, err = b.SubmitLimit(orderbookv1.SideSell, 10_100, 5)
	require.NoError(t, err)

	require.NoError(t, b.Cancel(res.OrderID))

	ask, ok := b.BestAsk()
	require.True(t, ok)
	assert.Equal(t, int64(10_100), ask, "best ask moves to the next level")
	assert.Len(t, b.Depth(orderbookv1.SideSell, 10), 1)
}

// Quantity conservation under a random operation stream, with the
// no-crossed-book invariant checked after every call.
func TestBook_RandomizedInvariants(t *testing.T) {
	b := NewBook()
	rng := rand.New(rand.NewPCG(7, 11))

	var restingIDs []uint64
	var submitted, cancelled int64

	for i := 0; i < 5_000; i++ {
		switch op := rng.Float64(); {
		case op < 0.45:
			price := 9_900 + rng.Int64N(200)
			quantity := 1 + rng.Int64N(100)
			side := orderbookv1.SideBuy
			if rng.Float64() < 0.5 {
				side = orderbookv1.SideSell
			}
			res, err := b.SubmitLimit(side, price, quantity)
			require.NoError(t, err)
			submitted += quantity
			if res.Remaining > 0 {
				restingIDs = append(restingIDs, res.OrderID)
			}
		case op < 0.65:
			quantity := 1 + rng.Int64N(150)
			side := orderbookv1.SideBuy
			if rng.Float64() < 0.5 {
				side = orderbookv1.SideSell
			}
			_, err := b.SubmitMarket(side, quantity)
			require.NoError(t, err)
		default:
			if len(restingIDs) == 0 {
				continue
			}
			idx := rng.IntN(len(restingIDs))
			id := restingIDs[idx]
			restingIDs = append(restingIDs[:idx], restingIDs[idx+1:]...)
			if err := b.Cancel(id); err != nil {
				// the order may have been filled since it rested
				require.True(t, errors.ErrorCodeEquals(err, string(errors.OrderNotFound)))
			} else {
				cancelled++
			}
		}

		assertNotCrossed(t, b)
	}

	// every executed quantity appears exactly once on each side of the log
	var executed int64
	for _, trade := range b.TradesSince(0) {
		require.Positive(t, trade.Quantity)
		require.Positive(t, trade.Price)
		require.NotEqual(t, trade.BuyOrderID, trade.SellOrderID)
		executed += trade.Quantity
	}

	// resting + executed never exceeds limit quantity submitted
	assert.LessOrEqual(t, b.BidVolume()+b.AskVolume(), submitted)
	assert.Positive(t, executed, "stream should have produced trades")
}

// Quantity conservation on a single crossing: what the bid side gives up
// equals what the ask side gives up equals the traded quantity.
func TestBook_QuantityConservation(t *testing.T) {
	b := NewBook()

	_, err := b.SubmitLimit(orderbookv1.SideBuy, 100, 80)
	require.NoError(t, err)
	bidVolBefore := b.BidVolume()

	res, err := b.SubmitLimit(orderbookv1.SideSell, 100, 50)
	require.NoError(t, err)

	var traded int64
	for _, trade := range res.Trades {
		traded += trade.Quantity
	}

	assert.Equal(t, int64(50), traded)
	assert.Equal(t, bidVolBefore-traded, b.BidVolume())
	assert.Equal(t, int64(0), b.AskVolume())
	assert.Equal(t, int64(30), bidVolBefore-traded)
}
