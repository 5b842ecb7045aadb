package search

import "github.com/corvidchess/corvid/internal/board"

// maxPly bounds the triangular PV buffer and, with it, the maximum recursion depth: deeply
// recursive by design, but never beyond this many plies (§9).
const maxPly = 256

// pvBuffer is a 256x256 triangular matrix capturing the best line found at each ply, written
// to directly by Negamax rather than allocated per node, to keep the hot path allocation-free
// (§3, §9).
type pvBuffer struct {
	moves  [maxPly][maxPly]board.Move
	length [maxPly]int
}

// clear truncates the line starting at ply to empty; called at node entry before the move loop.
func (b *pvBuffer) clear(ply int) {
	b.length[ply] = 0
}

// update records m as the best move at ply and appends the continuation collected at ply+1.
func (b *pvBuffer) update(ply int, m board.Move) {
	b.moves[ply][0] = m
	n := b.length[ply+1]
	if n > maxPly-1-1 {
		n = maxPly - 1 - 1
	}
	copy(b.moves[ply][1:1+n], b.moves[ply+1][:n])
	b.length[ply] = n + 1
}

// line returns the collected principal variation starting at ply, outward from root.
func (b *pvBuffer) line(ply int) []board.Move {
	n := b.length[ply]
	if n == 0 {
		return nil
	}
	out := make([]board.Move, n)
	copy(out, b.moves[ply][:n])
	return out
}
