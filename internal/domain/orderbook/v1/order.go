package orderbookv1

import (
	"errors"
	"time"
)

var (
	ErrNilOrder        = errors.New("order cannot be nil")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrOrderNotInLevel = errors.New("order not found in level")
)

// Side represents which side of the book an order belongs to.
type Side string

const (
	// SideBuy represents a buy (bid) order.
	SideBuy Side = "buy"
	// SideSell represents a sell (ask) order.
	SideSell Side = "sell"
)

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Kind represents the kind of order. Cancellation is a request against an
// existing order id, not an order kind.
type Kind string

const (
	// KindLimit represents a limit order.
	KindLimit Kind = "limit"
	// KindMarket represents a market order.
	KindMarket Kind = "market"
)

// Order is a single order: immutable intent plus mutable remaining quantity.
// Prices are integer ticks. The book assigns ID and Sequence at the
// sequencing point; wall-clock timestamps are informational only and never
// used for priority.
type Order struct {
	ID        uint64 `json:"id"`
	Side      Side   `json:"side"`
	Kind      Kind   `json:"kind"`
	Price     int64  `json:"price"` // unused for market orders
	Original  int64  `json:"originalQuantity"`
	Remaining int64  `json:"remainingQuantity"`
	Sequence  uint64 `json:"sequence"`
	Timestamp int64  `json:"timestamp"`

	// intrusive FIFO queue links, owned by the price level
	level *Level
	next  *Order
	prev  *Order
}

// NewOrder creates a new order with the given parameters. ID and Sequence
// are assigned by the book when it accepts the order.
func NewOrder(side Side, kind Kind, price, quantity int64) *Order {
	return &Order{
		Side:      side,
		Kind:      kind,
		Price:     price,
		Original:  quantity,
		Remaining: quantity,
		Timestamp: time.Now().UnixNano(),
	}
}

// IsBuy checks if the order is a buy order.
func (o *Order) IsBuy() bool {
	return o.Side == SideBuy
}

// IsSell checks if the order is a sell order.
func (o *Order) IsSell() bool {
	return o.Side == SideSell
}

// IsFilled checks if the order is fully filled.
func (o *Order) IsFilled() bool {
	return o.Remaining == 0
}

// Filled returns the executed quantity of the order.
func (o *Order) Filled() int64 {
	return o.Original - o.Remaining
}

// Level returns the price level the order currently rests in, or nil.
func (o *Order) Level() *Level {
	return o.level
}
