package marketdatav1

// LevelEntry is one aggregated price level of a depth snapshot.
type LevelEntry struct {
	Price    int64 `json:"price"`
	Quantity int64 `json:"quantity"`
	Orders   int   `json:"orders"`
}

// BookSnapshot is a consistent point-in-time view of the book published for
// external observers. BestBid/BestAsk are nil when the side is empty.
type BookSnapshot struct {
	Symbol     string       `json:"symbol"`
	BestBid    *int64       `json:"bestBid"`
	BestAsk    *int64       `json:"bestAsk"`
	Bids       []LevelEntry `json:"bids"`
	Asks       []LevelEntry `json:"asks"`
	TradeCount uint64       `json:"tradeCount"`
	Timestamp  int64        `json:"timestamp"`
}
