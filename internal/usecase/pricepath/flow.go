package pricepath

import (
	"math"
	"math/rand/v2"

	orderbookv1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/orderbook/v1"
)

// Intent is one randomly parameterized order intent from the flow generator.
// Price is zero for market intents.
type Intent struct {
	Kind     orderbookv1.Kind
	Side     orderbookv1.Side
	Price    int64
	Quantity int64
}

// Flow produces a stream of random order intents around a reference price:
// roughly 20% market and 80% limit orders, quantities 1-100, limit prices
// inside a band on the passive side of the reference. It only emits
// intents respecting price > 0 and quantity > 0.
type Flow struct {
	rng         *rand.Rand
	marketRatio float64
	maxQuantity int64
	priceBand   float64
}

// NewFlow creates a flow generator with the default distributions.
func NewFlow(seed uint64) *Flow {
	return &Flow{
		rng:         rand.New(rand.NewPCG(seed^0xda942042e4dd58b5, seed)),
		marketRatio: 0.2,
		maxQuantity: 100,
		priceBand:   0.008,
	}
}

// Next generates one intent around referencePrice.
func (f *Flow) Next(referencePrice int64) Intent {
	side := orderbookv1.SideBuy
	if f.rng.Float64() < 0.5 {
		side = orderbookv1.SideSell
	}
	quantity := 1 + f.rng.Int64N(f.maxQuantity)

	if f.rng.Float64() < f.marketRatio {
		return Intent{
			Kind:     orderbookv1.KindMarket,
			Side:     side,
			Quantity: quantity,
		}
	}

	// limit orders lean passive: buys at or below the reference, sells at
	// or above, uniformly inside the band
	offset := int64(math.Round(float64(referencePrice) * f.priceBand * f.rng.Float64()))
	var price int64
	if side == orderbookv1.SideBuy {
		price = referencePrice - offset
	} else {
		price = referencePrice + offset
	}
	if price < 1 {
		price = 1
	}

	return Intent{
		Kind:     orderbookv1.KindLimit,
		Side:     side,
		Price:    price,
		Quantity: quantity,
	}
}
