package marketmaker

// Quote is one two-sided quote straddling a reference price.
type Quote struct {
	BidPrice int64
	AskPrice int64
	Size     int64
}

// Quoter generates symmetric two-sided quotes. It is stateless beyond its
// configuration and only ever reaches the book through the public submit
// operations.
type Quoter struct {
	spreadBps int64
	size      int64
}

// NewQuoter creates a quoter with the given spread (basis points of the
// reference price, split across both sides) and per-side size.
func NewQuoter(spreadBps, size int64) *Quoter {
	return &Quoter{
		spreadBps: spreadBps,
		size:      size,
	}
}

// Quote returns a bid and an ask straddling referencePrice. The half-spread
// is at least one tick so the quote never locks the reference.
func (q *Quoter) Quote(referencePrice int64) Quote {
	half := referencePrice * q.spreadBps / 20000
	if half < 1 {
		half = 1
	}

	bid := referencePrice - half
	if bid < 1 {
		bid = 1
	}

	return Quote{
		BidPrice: bid,
		AskPrice: referencePrice + half,
		Size:     q.size,
	}
}
