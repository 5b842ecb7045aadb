package search

import (
	"time"

	"github.com/corvidchess/corvid/internal/board"
)

// Config holds the static, rarely-changing knobs a search call is invoked with: the deadline is
// passed separately since it is mutated (Stop) from outside the search goroutine.
type Config struct {
	// HistFactor and EvalFactor are accepted per the UCI option contract but never consulted
	// (§9 open question): the searcher documents them as currently inert rather than wiring
	// them to nothing silently.
	HistFactor int
	EvalFactor int
}

// run carries the mutable state of a single top-level search call through the recursive
// Negamax/qsearch descent: the TT, history table and PV buffer are exclusively owned by this
// goroutine for the call's duration (§5).
type run struct {
	tt       *TranspositionTable
	hist     *ButterflyHistory
	pv       *pvBuffer
	nodes    *NodeCount
	deadline *Deadline
	cfg      Config

	start time.Time
}

func (r *run) now() time.Time {
	return time.Now()
}

// negamax is the recursive fail-soft alpha-beta search described in §4.6. position is the node
// to search; history is the stack of ancestor positions reachable without an intervening
// zeroing move, used for repetition detection (§4.6.8). Returns TimeoutSentinel if the hard
// deadline trips during this call or any descendant.
func (r *run) negamax(pos *board.Position, history []*board.Position, depth, ply int, alpha, beta board.Score) board.Score {
	r.nodes.addNode()
	r.nodes.observeDepth(ply)
	r.pv.clear(ply)

	if depth <= 0 {
		r.nodes.addLeaf()
		return r.qsearch(pos, ply, alpha, beta)
	}

	if r.deadline.CheckHard(r.now(), r.nodes.Searched()) {
		return TimeoutSentinel
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if pos.IsCheck() {
			return MatedIn0
		}
		return 0
	}

	inCheck := pos.IsCheck()
	childDepth := depth - 1
	if inCheck {
		childDepth++
	}

	key := pos.Zobrist()

	var ttMove board.Move
	hasTTMove := false
	entry, hit := r.tt.Get(moves, key)
	if hit {
		ttMove = board.Move{From: entry.From, To: entry.To}
		hasTTMove = true
	}

	if !hit && depth >= 3 {
		iidDepth := depth - 2
		if iidDepth > 2 {
			iidDepth = 2
		}
		s := r.negamax(pos, history, iidDepth, ply, alpha, beta)
		if s == TimeoutSentinel {
			return TimeoutSentinel
		}
		entry, hit = r.tt.Get(moves, key)
		if hit {
			ttMove = board.Move{From: entry.From, To: entry.To}
			hasTTMove = true
		}
	}

	if hit && entry.Depth >= depth {
		if entry.Bound != UpperBound && entry.Score >= beta {
			return entry.Score
		}
		if entry.Bound != LowerBound && entry.Score <= alpha {
			return entry.Score
		}
	}

	// Draw detection, before making any child move (§4.6.8).
	repeats := 0
	for _, h := range history {
		if h.Equal(pos) {
			repeats++
		}
	}
	if repeats >= 2 {
		return 0
	}
	if pos.HalfmoveClock() >= 100 {
		return 0
	}

	childHistory := append(history, pos)

	side := pos.Turn()
	best := board.Score(minInt16)
	var bestMove board.Move
	nodeType := boundAll

	sel := newMoveSelector(pos, moves, ttMove, hasTTMove, r.hist)
	for {
		m, ok := sel.next()
		if !ok {
			break
		}

		var nextHistory []*board.Position
		if m.IsZeroing() {
			nextHistory = nil
		} else {
			nextHistory = childHistory
		}

		child := pos.Apply(m)
		raw := r.negamax(child, nextHistory, childDepth, ply+1, -beta, -alpha)
		if raw == TimeoutSentinel {
			return TimeoutSentinel
		}
		s := -raw

		if s > best {
			best = s
			bestMove = m

			if s >= beta {
				nodeType = boundCut
				r.hist.recordCutoff(side, depth, m, sel.seen())
				break
			}
			if s > alpha {
				alpha = s
				nodeType = boundPV
				r.pv.update(ply, m)
			}
		}
	}

	best = shrinkMate(best)

	var bound Bound
	switch nodeType {
	case boundPV:
		bound = Exact
	case boundCut:
		bound = LowerBound
	default:
		bound = UpperBound
	}
	r.tt.Write(key, depth, best, bestMove.From, bestMove.To, bound)

	return best
}

type nodeKind uint8

const (
	boundAll nodeKind = iota
	boundCut
	boundPV
)

const minInt16 = -1 << 15
