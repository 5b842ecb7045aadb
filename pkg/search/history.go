package search

import "github.com/corvidchess/corvid/internal/board"

// historyMax bounds the magnitude of a butterfly history score; also the gravity-formula scale.
const historyMax = 16384

// ButterflyHistory is the side x from x to quiet-move heuristic table: how often a quiet move
// has caused a beta cutoff, reinforced by a history-gravity formula so the score saturates
// rather than growing unboundedly (§3, §4.7). Single-threaded, owned exclusively by the
// searcher for the duration of one search call (though §9 permits reuse across calls too).
type ButterflyHistory struct {
	table [board.NumColors][board.NumSquares][board.NumSquares]int16
}

// NewButterflyHistory returns a zeroed table.
func NewButterflyHistory() *ButterflyHistory {
	return &ButterflyHistory{}
}

// Reset zeroes the table in place, for callers that choose not to reuse history across games.
func (h *ButterflyHistory) Reset() {
	*h = ButterflyHistory{}
}

// Score returns the current history value for a quiet move by the given side.
func (h *ButterflyHistory) Score(side board.Color, from, to board.Square) int16 {
	return h.table[side][from][to]
}

// bonus computes the clamped reinforcement magnitude for a cutoff found at depth. The raw
// formula is computed in int before clamping, since 300*depth can overflow int16 at large depths
// well before the clamp would bring it back in range.
func bonus(depth int) int16 {
	b := 300*depth - 250
	switch {
	case b > historyMax:
		return historyMax
	case b < -historyMax:
		return -historyMax
	default:
		return int16(b)
	}
}

// update applies the history-gravity formula to a single (side,from,to) entry: h += delta -
// (h*|delta|)/MAX. A positive delta reinforces a cutoff move; a negative delta is the malus
// applied to quiet moves that were tried and failed to cut off. The multiply is done in int32
// since cur*abs can reach historyMax^2, far past int16's range, before the division brings the
// result back within bounds.
func (h *ButterflyHistory) update(side board.Color, from, to board.Square, delta int16) {
	cur := &h.table[side][from][to]
	abs := int32(delta)
	if abs < 0 {
		abs = -abs
	}
	*cur += delta - int16((int32(*cur)*abs)/historyMax)
}

// recordCutoff applies the bonus to the cutting move and the malus to every quiet move tried
// before it at this node that did not cut off, per §4.7. A no-op if the cutting move itself is
// a capture or promotion: history only ever ranks quiet moves.
func (h *ButterflyHistory) recordCutoff(side board.Color, depth int, cutting board.Move, tried []board.Move) {
	if cutting.IsCapture() || cutting.IsPromotion() {
		return
	}
	b := bonus(depth)
	for _, m := range tried {
		if m.IsCapture() || m.IsPromotion() {
			continue
		}
		if m.Equals(cutting) {
			continue
		}
		h.update(side, m.From, m.To, -b)
	}
	h.update(side, cutting.From, cutting.To, b)
}
