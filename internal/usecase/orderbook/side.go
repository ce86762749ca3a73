package orderbook

import (
	orderbookv1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/orderbook/v1"
)

// bookSide is one ordered half of the book: a price tree of levels plus a
// cached best-level pointer so top-of-book reads stay O(1). Bids are best at
// the highest price, asks at the lowest.
type bookSide struct {
	side  orderbookv1.Side
	tree  *levelTree
	best  *orderbookv1.Level
	total int64 // aggregate resting quantity across all levels
}

func newBookSide(side orderbookv1.Side) *bookSide {
	return &bookSide{
		side: side,
		tree: newLevelTree(),
	}
}

// findOrCreate returns the level at price, creating and indexing it if absent.
func (s *bookSide) findOrCreate(price int64) *orderbookv1.Level {
	lvl := s.tree.Upsert(price)
	if s.best == nil || s.better(price, s.best.Price) {
		s.best = lvl
	}
	return lvl
}

// removeLevel deletes an emptied level from the tree and repairs the cached
// best pointer when the top of the side disappears.
func (s *bookSide) removeLevel(lvl *orderbookv1.Level) {
	s.tree.Delete(lvl.Price)
	if s.best == lvl {
		if s.side == orderbookv1.SideBuy {
			s.best = s.tree.Predecessor(lvl.Price)
		} else {
			s.best = s.tree.Successor(lvl.Price)
		}
	}
}

// bestLevel returns the top level of this side, or nil when empty.
func (s *bookSide) bestLevel() *orderbookv1.Level {
	return s.best
}

// next returns the level one step worse than lvl in priority order.
func (s *bookSide) next(lvl *orderbookv1.Level) *orderbookv1.Level {
	if s.side == orderbookv1.SideBuy {
		return s.tree.Predecessor(lvl.Price)
	}
	return s.tree.Successor(lvl.Price)
}

// better reports whether price a has priority over price b on this side.
func (s *bookSide) better(a, b int64) bool {
	if s.side == orderbookv1.SideBuy {
		return a > b
	}
	return a < b
}

// isEmpty reports whether the side has no levels.
func (s *bookSide) isEmpty() bool {
	return s.best == nil
}

// levelCount returns the number of live price levels.
func (s *bookSide) levelCount() int {
	return s.tree.Size()
}
