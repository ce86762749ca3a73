package pricepath

import (
	"math"
	"math/rand/v2"
)

// Walk is a bounded random walk over a reference price in ticks. The walk
// is infinite and restartable; the price never drops below one tick.
type Walk struct {
	start      int64
	price      int64
	volatility float64
	seed       uint64
	rng        *rand.Rand
}

// NewWalk creates a walk starting at startPrice. volatility is the maximum
// relative move per step.
func NewWalk(startPrice int64, volatility float64, seed uint64) *Walk {
	return &Walk{
		start:      startPrice,
		price:      startPrice,
		volatility: volatility,
		seed:       seed,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next advances the walk one step and returns the new reference price.
func (w *Walk) Next() int64 {
	change := (w.rng.Float64()*2 - 1) * w.volatility
	next := int64(math.Round(float64(w.price) * (1 + change)))
	if next < 1 {
		next = 1
	}
	w.price = next
	return next
}

// Price returns the current reference price without advancing.
func (w *Walk) Price() int64 {
	return w.price
}

// Reset restarts the walk from its starting price with its original seed,
// replaying the same path.
func (w *Walk) Reset() {
	w.price = w.start
	w.rng = rand.New(rand.NewPCG(w.seed, w.seed^0x9e3779b97f4a7c15))
}
