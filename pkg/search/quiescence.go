package search

import (
	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/internal/eval"
)

// qsearch is the stand-pat capture/promotion search run at depth <= 0. When the side to move is
// in check, stand-pat is forbidden and every legal move (a check evasion) is searched instead,
// matching §4.5.
func (r *run) qsearch(pos *board.Position, ply int, alpha, beta board.Score) board.Score {
	r.nodes.addQNode()
	r.nodes.observeDepth(ply)

	if r.deadline.CheckHard(r.now(), r.nodes.Searched()) {
		return TimeoutSentinel
	}

	inCheck := pos.IsCheck()

	var moves []board.Move
	var best board.Score

	if inCheck {
		moves = pos.LegalMoves()
		if len(moves) == 0 {
			return MatedIn0
		}
		best = MatedIn0
	} else {
		standPat := eval.Evaluate(pos)
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
		best = standPat
		moves = pos.CaptureMoves()
	}

	sel := newMoveSelector(pos, moves, board.Move{}, false, r.hist)
	for {
		m, ok := sel.next()
		if !ok {
			break
		}

		child := pos.Apply(m)
		raw := r.qsearch(child, ply+1, -beta, -alpha)
		if raw == TimeoutSentinel {
			return TimeoutSentinel
		}
		s := -raw

		if s > best {
			best = s
		}
		if best > alpha {
			alpha = best
		}
		if best >= beta {
			return best
		}
	}

	return best
}
