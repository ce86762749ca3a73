package portfolio

import (
	"sync"

	orderbookv1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// Accountant consumes the trade feed and maintains cash, position and PnL
// for one participant. The book emits buy/sell order ids, never ownership:
// the accountant records every order id it submitted and attributes only
// the legs that match, so coexisting market makers and random flow never
// pollute the tracked portfolio.
type Accountant struct {
	mu           sync.Mutex
	tickExp      int32
	cash         decimal.Decimal
	position     int64
	initialValue decimal.Decimal
	myOrders     map[uint64]struct{}
	fills        int
}

// NewAccountant creates an accountant with starting cash and position.
// tickExp is the number of decimal places one price tick represents.
func NewAccountant(initialCash decimal.Decimal, initialPosition int64, startPrice int64, tickExp int32) *Accountant {
	a := &Accountant{
		tickExp:  tickExp,
		cash:     initialCash,
		position: initialPosition,
		myOrders: make(map[uint64]struct{}),
	}
	a.initialValue = a.valueAt(startPrice)
	return a
}

// Track registers an order id this participant submitted. Only trades
// touching tracked ids move the portfolio.
func (a *Accountant) Track(orderID uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.myOrders[orderID] = struct{}{}
}

// OnTrade applies one trade from the feed. A trade where both legs are
// tracked (a self-cross) nets out to zero position change.
func (a *Accountant) OnTrade(t orderbookv1.Trade) {
	a.mu.Lock()
	defer a.mu.Unlock()

	notional := decimal.New(t.Notional(), -a.tickExp)

	if _, mine := a.myOrders[t.BuyOrderID]; mine {
		a.cash = a.cash.Sub(notional)
		a.position += t.Quantity
		a.fills++
	}
	if _, mine := a.myOrders[t.SellOrderID]; mine {
		a.cash = a.cash.Add(notional)
		a.position -= t.Quantity
		a.fills++
	}
}

// Cash returns the current cash balance.
func (a *Accountant) Cash() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cash
}

// Position returns the current signed position.
func (a *Accountant) Position() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position
}

// Fills returns the number of own fills applied.
func (a *Accountant) Fills() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fills
}

// Value returns cash plus position marked at currentPrice.
func (a *Accountant) Value(currentPrice int64) decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.valueAt(currentPrice)
}

// PnLPercent returns the portfolio return versus its initial value, in percent.
func (a *Accountant) PnLPercent(currentPrice int64) decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialValue.IsZero() {
		return decimal.Zero
	}
	return a.valueAt(currentPrice).
		Sub(a.initialValue).
		Div(a.initialValue).
		Mul(decimal.NewFromInt(100))
}

func (a *Accountant) valueAt(price int64) decimal.Decimal {
	return a.cash.Add(a.priceDecimal(price).Mul(decimal.NewFromInt(a.position)))
}

func (a *Accountant) priceDecimal(ticks int64) decimal.Decimal {
	return decimal.New(ticks, -a.tickExp)
}
