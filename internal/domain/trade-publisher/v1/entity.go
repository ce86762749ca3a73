package tradepublisherv1

import "encoding/json"

// TradeEvent is the outbound trade feed payload. Price is a decimal string
// so downstream consumers never need to know the book's tick size.
type TradeEvent struct {
	EventID     string `json:"eventID"`
	Symbol      string `json:"symbol"`
	Sequence    uint64 `json:"sequence"`
	Price       string `json:"price"`
	Quantity    int64  `json:"quantity"`
	BuyOrderID  uint64 `json:"buyOrderID"`
	SellOrderID uint64 `json:"sellOrderID"`
	ExecutedAt  int64  `json:"executedAt"`
}

// ToBytes serializes the event for the wire.
func ToBytes(e *TradeEvent) []byte {
	buf, _ := json.Marshal(e)
	return buf
}
