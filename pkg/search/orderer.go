package search

import (
	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/internal/eval"
)

// Tiers, low to high, establishing the lexicographic ordering across the three move classes
// regardless of within-tier key magnitude (§4.4). The gap must exceed the largest possible
// within-tier key swing: a capture's key can move by victimValue*captureVictimScale (up to
// queen * captureVictimScale) plus an aggressor term of up to a king's value, so the gap is far
// larger than tierQuiet's own history-score swing needs.
const (
	tierTTMove orderKey = iota * (1 << 28)
	tierCapture
	tierQuiet
)

// captureVictimScale weights the victim term of a capture's order key so it strictly dominates
// the aggressor term: the aggressor value can be as large as a king's nominal value, so the scale
// must exceed that, or a king capturing a cheaper victim could sort ahead of a pawn capturing a
// pricier one, breaking the lexicographic (-victim, -aggressor) order §4.4 specifies.
const captureVictimScale = 1 << 16

var promotionRank = map[board.Piece]orderKey{
	board.Queen:  0,
	board.Rook:   1,
	board.Bishop: 2,
	board.Knight: 3,
}

// moveOrderKey computes MoveOrderer's total order key for m: the TT hint move first (tie-broken
// among promotions by piece value, so a queen-promotion TT move still sorts before others), then
// captures by MVV/LVA, then quiets by negated history score.
func moveOrderKey(pos *board.Position, m board.Move, ttMove board.Move, hasTTMove bool, hist *ButterflyHistory) orderKey {
	if hasTTMove && m.From == ttMove.From && m.To == ttMove.To {
		return tierTTMove + promotionRank[m.Promotion]
	}

	if m.IsCapture() {
		victimSq := m.To
		if m.EnPassant {
			victimSq = m.EnPassantCaptureSquare()
		}
		_, victimPiece, ok := pos.RoleAt(victimSq)
		var victimValue board.Score
		if ok {
			victimValue = eval.EvaluatePiece(victimSq, pos.Turn().Opponent(), victimPiece, pos)
		}
		aggressorValue := eval.EvaluatePiece(m.From, pos.Turn(), m.Piece, pos)

		return tierCapture + orderKey(-int32(victimValue))*captureVictimScale + orderKey(-int32(aggressorValue))
	}

	side := pos.Turn()
	return tierQuiet - orderKey(hist.Score(side, m.From, m.To))
}

// newMoveSelector builds a selector over moves ordered by MoveOrderer's key (§4.4), to be
// consumed by LazySelectionSort.
func newMoveSelector(pos *board.Position, moves []board.Move, ttMove board.Move, hasTTMove bool, hist *ButterflyHistory) *selector {
	return newSelector(moves, func(m board.Move) orderKey {
		return moveOrderKey(pos, m, ttMove, hasTTMove, hist)
	})
}
