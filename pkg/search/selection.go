package search

import "github.com/corvidchess/corvid/internal/board"

// orderKey is the total order key MoveOrderer computes for a single move: lower sorts earlier.
type orderKey int32

// selector iterates a borrowed move slice in ascending key order by repeated linear selection,
// rather than a full sort: move lists are small (typically 20-40), so cache-friendly repeated
// scanning beats sort overhead, and a search that cuts off early skips scanning the tail
// entirely (§4.3).
type selector struct {
	moves []board.Move
	keys  []orderKey
	taken []bool
	order []board.Move // yielded, in yield order
}

// newSelector builds a selector over moves, computing a key for each via keyOf.
func newSelector(moves []board.Move, keyOf func(board.Move) orderKey) *selector {
	keys := make([]orderKey, len(moves))
	for i, m := range moves {
		keys[i] = keyOf(m)
	}
	return &selector{
		moves: moves,
		keys:  keys,
		taken: make([]bool, len(moves)),
	}
}

// next returns the smallest-key move not yet yielded, and marks it yielded.
func (s *selector) next() (board.Move, bool) {
	best := -1
	for i := range s.moves {
		if s.taken[i] {
			continue
		}
		if best == -1 || s.keys[i] < s.keys[best] {
			best = i
		}
	}
	if best == -1 {
		return board.Move{}, false
	}
	s.taken[best] = true
	s.order = append(s.order, s.moves[best])
	return s.moves[best], true
}

// seen returns every move already yielded by next, in yield order.
func (s *selector) seen() []board.Move {
	return s.order
}
