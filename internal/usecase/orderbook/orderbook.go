package orderbook

import (
	"fmt"
	"sync"
	"time"

	orderbookv1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/orderbook/v1"
	"github.com/abhatnagar21/HFT-Simulator/pkg/errors"
)

// LimitResult reports the outcome of a limit submission: the trades the
// insert produced (may be empty), the book-assigned order id, and the
// order's remaining quantity after any crossing resolved.
type LimitResult struct {
	OrderID   uint64
	Trades    []orderbookv1.Trade
	Remaining int64
}

// MarketResult reports the outcome of a market submission. Unfilled
// quantity is returned to the caller, never silently dropped.
type MarketResult struct {
	OrderID  uint64
	Trades   []orderbookv1.Trade
	Unfilled int64
}

// LevelDepth is one row of a depth snapshot.
type LevelDepth struct {
	Price    int64 `json:"price"`
	Quantity int64 `json:"quantity"`
	Orders   int   `json:"orders"`
}

// Book owns both sides and is the only mutation point for book state.
// All mutations run under one mutex: sequence assignment and application
// are atomic together, so time-priority ties are deterministic. Reads of
// the top of book and depth take the read lock only.
type Book struct {
	mu     sync.RWMutex
	bids   *bookSide
	asks   *bookSide
	orders map[uint64]*orderbookv1.Order // id index over resting orders

	seq      uint64 // arrival counter, also the order id source
	tradeSeq uint64
	trades   []orderbookv1.Trade // append-only, replayable
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{
		bids:   newBookSide(orderbookv1.SideBuy),
		asks:   newBookSide(orderbookv1.SideSell),
		orders: make(map[uint64]*orderbookv1.Order),
	}
}

// SubmitLimit validates and rests a limit order, then resolves any price
// cross it produced.
func (b *Book) SubmitLimit(side orderbookv1.Side, price, quantity int64) (*LimitResult, error) {
	if price <= 0 {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("limit price must be positive, got %d", price),
			string(errors.OrderInvalidPrice), "price")
	}
	if quantity <= 0 {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("limit quantity must be positive, got %d", quantity),
			string(errors.OrderInvalidQuantity), "quantity")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	order := orderbookv1.NewOrder(side, orderbookv1.KindLimit, price, quantity)
	b.admit(order)

	ownSide := b.sideOf(side)
	lvl := ownSide.findOrCreate(price)
	if err := lvl.Enqueue(order); err != nil {
		return nil, errors.TracerFromError(err)
	}
	ownSide.total += quantity
	b.orders[order.ID] = order

	trades := b.resolveCross()

	if err := b.checkNotCrossed(); err != nil {
		return nil, err
	}

	return &LimitResult{
		OrderID:   order.ID,
		Trades:    trades,
		Remaining: order.Remaining,
	}, nil
}

// SubmitMarket executes a market order against the opposite side. It never
// rests: whatever the book cannot fill comes back as Unfilled.
func (b *Book) SubmitMarket(side orderbookv1.Side, quantity int64) (*MarketResult, error) {
	if quantity <= 0 {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("market quantity must be positive, got %d", quantity),
			string(errors.OrderInvalidQuantity), "quantity")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	order := orderbookv1.NewOrder(side, orderbookv1.KindMarket, 0, quantity)
	b.admit(order)

	trades := b.executeMarket(order)

	if err := b.checkNotCrossed(); err != nil {
		return nil, err
	}

	return &MarketResult{
		OrderID:  order.ID,
		Trades:   trades,
		Unfilled: order.Remaining,
	}, nil
}

// Cancel removes a resting order by id. Cancellation is by identity, never
// by price/quantity value: two resting orders may share both.
func (b *Book) Cancel(orderID uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	order, exists := b.orders[orderID]
	if !exists {
		return errors.NewErrorDetails(
			fmt.Sprintf("order %d is unknown or already filled", orderID),
			string(errors.OrderNotFound), "orderID")
	}

	b.removeResting(order)
	return nil
}

// BestBid returns the top bid price. The second return is false when the
// bid side is empty.
func (b *Book) BestBid() (int64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lvl := b.bids.bestLevel()
	if lvl == nil {
		return 0, false
	}
	return lvl.Price, true
}

// BestAsk returns the top ask price. The second return is false when the
// ask side is empty.
func (b *Book) BestAsk() (int64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lvl := b.asks.bestLevel()
	if lvl == nil {
		return 0, false
	}
	return lvl.Price, true
}

// Depth returns a point-in-time snapshot of the top n levels of one side,
// best first, with aggregate quantity per level. A non-positive n yields an
// empty snapshot.
func (b *Book) Depth(side orderbookv1.Side, n int) []LevelDepth {
	if n <= 0 {
		return nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	s := b.sideOf(side)
	depth := make([]LevelDepth, 0, n)
	for lvl := s.bestLevel(); lvl != nil && len(depth) < n; lvl = s.next(lvl) {
		depth = append(depth, LevelDepth{
			Price:    lvl.Price,
			Quantity: lvl.TotalQuantity(),
			Orders:   lvl.OrderCount(),
		})
	}
	return depth
}

// TradesSince returns the trade log entries with sequence strictly greater
// than seq, in execution order. TradesSince(0) replays the whole feed.
func (b *Book) TradesSince(seq uint64) []orderbookv1.Trade {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if seq >= uint64(len(b.trades)) {
		return nil
	}
	out := make([]orderbookv1.Trade, len(b.trades)-int(seq))
	copy(out, b.trades[seq:])
	return out
}

// TradeCount returns the number of executed trades.
func (b *Book) TradeCount() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tradeSeq
}

// BidVolume returns the aggregate resting buy quantity.
func (b *Book) BidVolume() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bids.total
}

// AskVolume returns the aggregate resting sell quantity.
func (b *Book) AskVolume() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.asks.total
}

// OpenOrders returns the number of resting orders.
func (b *Book) OpenOrders() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.orders)
}

// admit stamps an accepted order with its id and arrival sequence. Must be
// called under the write lock so that sequencing and application stay atomic.
func (b *Book) admit(order *orderbookv1.Order) {
	b.seq++
	order.ID = b.seq
	order.Sequence = b.seq
}

func (b *Book) sideOf(side orderbookv1.Side) *bookSide {
	if side == orderbookv1.SideBuy {
		return b.bids
	}
	return b.asks
}

// removeResting unlinks a resting order from its level and the id index,
// dropping the level if it emptied.
func (b *Book) removeResting(order *orderbookv1.Order) {
	lvl := order.Level()
	s := b.sideOf(order.Side)

	s.total -= order.Remaining
	lvl.Unlink(order)
	if lvl.IsEmpty() {
		s.removeLevel(lvl)
	}
	delete(b.orders, order.ID)
}

// checkNotCrossed enforces the global invariant after every mutation: if
// both sides are non-empty, best bid is strictly below best ask. A failure
// here is a matching-engine defect and is surfaced, never repaired.
func (b *Book) checkNotCrossed() error {
	bid := b.bids.bestLevel()
	ask := b.asks.bestLevel()
	if bid != nil && ask != nil && bid.Price >= ask.Price {
		return errors.NewErrorDetails(
			fmt.Sprintf("book crossed after operation: bid %d >= ask %d", bid.Price, ask.Price),
			string(errors.BookCrossed), "book")
	}
	return nil
}

// recordTrade appends one execution to the trade log. Must be called under
// the write lock.
func (b *Book) recordTrade(price, quantity int64, buyID, sellID uint64) orderbookv1.Trade {
	b.tradeSeq++
	trade := orderbookv1.Trade{
		Sequence:    b.tradeSeq,
		Price:       price,
		Quantity:    quantity,
		BuyOrderID:  buyID,
		SellOrderID: sellID,
		Timestamp:   time.Now().UnixNano(),
	}
	b.trades = append(b.trades, trade)
	return trade
}
