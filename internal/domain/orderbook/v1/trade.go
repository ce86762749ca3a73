package orderbookv1

// Trade is the immutable record of executed volume between one buy and one
// sell order. Trades execute at the maker's price: the resting order quoted
// that price and receives it.
type Trade struct {
	Sequence    uint64 `json:"sequence"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	BuyOrderID  uint64 `json:"buyOrderID"`
	SellOrderID uint64 `json:"sellOrderID"`
	Timestamp   int64  `json:"timestamp"`
}

// Notional returns price*quantity in tick units.
func (t Trade) Notional() int64 {
	return t.Price * t.Quantity
}
