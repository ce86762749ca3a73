package orderbookv1

import "fmt"

// Level holds all resting orders at a single price, strict FIFO by arrival.
// The queue is an intrusive doubly-linked list so that cancellation unlinks
// in O(1) once the order is located through the id index.
type Level struct {
	Price         int64
	head          *Order
	tail          *Order
	orderCount    int
	totalQuantity int64
}

// NewLevel creates an empty level at the given price.
func NewLevel(price int64) *Level {
	return &Level{Price: price}
}

// Enqueue appends an order at the tail of the FIFO queue.
func (l *Level) Enqueue(o *Order) error {
	if o == nil {
		return ErrNilOrder
	}
	if o.Remaining <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, o.Remaining)
	}

	o.level = l
	if l.tail != nil {
		l.tail.next = o
		o.prev = l.tail
	} else {
		l.head = o
	}
	l.tail = o
	l.orderCount++
	l.totalQuantity += o.Remaining

	return nil
}

// Front returns the oldest resting order, or nil if the level is empty.
func (l *Level) Front() *Order {
	return l.head
}

// Unlink removes an order from anywhere in the queue.
func (l *Level) Unlink(o *Order) error {
	if o == nil {
		return ErrNilOrder
	}
	if o.level != l {
		return ErrOrderNotInLevel
	}

	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.next, o.prev = nil, nil
	o.level = nil
	l.orderCount--
	l.totalQuantity -= o.Remaining

	return nil
}

// ReduceQuantity records a partial fill of a resting order against the
// level's aggregate.
func (l *Level) ReduceQuantity(qty int64) {
	l.totalQuantity -= qty
}

// IsEmpty checks if the level has no resting orders.
func (l *Level) IsEmpty() bool {
	return l.orderCount == 0
}

// OrderCount returns the number of resting orders at this level.
func (l *Level) OrderCount() int {
	return l.orderCount
}

// TotalQuantity returns the aggregate resting quantity at this level.
func (l *Level) TotalQuantity() int64 {
	return l.totalQuantity
}

// Orders returns the resting orders in FIFO order.
func (l *Level) Orders() []*Order {
	orders := make([]*Order, 0, l.orderCount)
	for o := l.head; o != nil; o = o.next {
		orders = append(orders, o)
	}
	return orders
}

// Validate checks the level's internal consistency.
func (l *Level) Validate() error {
	if l.Price <= 0 {
		return fmt.Errorf("%w: level price %d", ErrInvalidPrice, l.Price)
	}

	var qty int64
	count := 0
	for o := l.head; o != nil; o = o.next {
		if o.Remaining < 0 {
			return fmt.Errorf("%w: order %d has quantity %d", ErrInvalidQuantity, o.ID, o.Remaining)
		}
		qty += o.Remaining
		count++
	}

	if count != l.orderCount {
		return fmt.Errorf("order count mismatch: counted %d, stored %d", count, l.orderCount)
	}
	if qty != l.totalQuantity {
		return fmt.Errorf("quantity mismatch: counted %d, stored %d", qty, l.totalQuantity)
	}

	return nil
}
