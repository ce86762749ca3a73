package orderbook

import (
	orderbookv1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/orderbook/v1"
)

// resolveCross matches the tops of the book while they overlap. The maker
// is the top order that arrived earlier; each trade executes at the maker's
// price for the min of the two remaining quantities. Ties within a level
// are strict FIFO by sequence. Must be called under the write lock.
func (b *Book) resolveCross() []orderbookv1.Trade {
	var trades []orderbookv1.Trade

	for {
		bidLvl := b.bids.bestLevel()
		askLvl := b.asks.bestLevel()
		if bidLvl == nil || askLvl == nil || bidLvl.Price < askLvl.Price {
			break
		}

		bid := bidLvl.Front()
		ask := askLvl.Front()

		// the resting order with the lower sequence was already in the
		// book when the cross appeared; it set the execution price
		price := bid.Price
		if ask.Sequence < bid.Sequence {
			price = ask.Price
		}

		quantity := min(bid.Remaining, ask.Remaining)
		b.fillResting(bid, quantity)
		b.fillResting(ask, quantity)
		trades = append(trades, b.recordTrade(price, quantity, bid.ID, ask.ID))
	}

	return trades
}

// executeMarket walks the opposite side from the best price outward,
// consuming resting orders FIFO. Each fill trades at the resting order's
// price. Stops when the taker is exhausted or the side empties; the
// remainder stays on the taker for the caller to see.
func (b *Book) executeMarket(taker *orderbookv1.Order) []orderbookv1.Trade {
	opposite := b.sideOf(taker.Side.Opposite())
	var trades []orderbookv1.Trade

	for taker.Remaining > 0 {
		lvl := opposite.bestLevel()
		if lvl == nil {
			break
		}

		maker := lvl.Front()
		price := maker.Price
		quantity := min(taker.Remaining, maker.Remaining)

		taker.Remaining -= quantity
		b.fillResting(maker, quantity)

		buyID, sellID := taker.ID, maker.ID
		if taker.IsSell() {
			buyID, sellID = maker.ID, taker.ID
		}
		trades = append(trades, b.recordTrade(price, quantity, buyID, sellID))
	}

	return trades
}

// fillResting applies a fill to a resting order, keeping the level and side
// aggregates consistent and evicting the order the instant it is exhausted.
func (b *Book) fillResting(o *orderbookv1.Order, quantity int64) {
	s := b.sideOf(o.Side)
	o.Remaining -= quantity
	o.Level().ReduceQuantity(quantity)
	s.total -= quantity

	if o.IsFilled() {
		lvl := o.Level()
		lvl.Unlink(o)
		if lvl.IsEmpty() {
			s.removeLevel(lvl)
		}
		delete(b.orders, o.ID)
	}
}
