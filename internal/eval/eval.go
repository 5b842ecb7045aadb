// Package eval implements a static position evaluator: material plus piece-square tables,
// blended between middlegame and endgame by a material-derived phase. It has no mutable state
// and no notion of search — just the pure function pkg/search's move ordering and leaf scoring
// consult.
package eval

import "github.com/corvidchess/corvid/internal/board"

// NominalValue is the material value of a piece role, in centipawns. The king's value is never
// consulted by Evaluate (kings are never captured) but is defined for completeness and for
// MVV/LVA, where a king "victim" can never occur but a king "aggressor" commonly does.
func NominalValue(p board.Piece) board.Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight:
		return 320
	case board.Bishop:
		return 330
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 20000
	default:
		return 0
	}
}

// phaseWeight is the contribution of one piece of this role to the game phase; pawns and kings
// do not count, so a position with all the non-pawn material still on the board has phase 24.
func phaseWeight(p board.Piece) int {
	switch p {
	case board.Knight, board.Bishop:
		return 1
	case board.Rook:
		return 2
	case board.Queen:
		return 4
	default:
		return 0
	}
}

const totalPhase = 2*2*1 + 2*2*1 + 2*2*2 + 2*1*4 // 2 knights + 2 bishops + 2 rooks + 1 queen, per side

// Evaluate returns the static evaluation of pos in centipawns, from the perspective of the side
// to move, per the EXTERNAL INTERFACES consumed by pkg/search: eval(position) -> score.
func Evaluate(pos *board.Position) board.Score {
	var white, black board.Score

	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		c, piece, ok := pos.RoleAt(sq)
		if !ok {
			continue
		}

		v := EvaluatePiece(sq, c, piece, pos)
		if c == board.White {
			white += v
		} else {
			black += v
		}
	}

	total := white - black
	if pos.Turn() == board.Black {
		total = -total
	}
	return total
}

// EvaluatePiece returns the value (material plus piece-square bonus) of a single piece of the
// given color and role standing on sq, as a positive value for either color (Evaluate applies
// the sign). It is also consulted by
// MoveOrderer for MVV/LVA victim/aggressor valuation, per SPEC_FULL.md §4.10; the phase blend
// there uses the position passed in to weigh middlegame vs. endgame tables the same way
// Evaluate does, so move ordering and the leaf score agree on piece values.
func EvaluatePiece(sq board.Square, c board.Color, p board.Piece, pos *board.Position) board.Score {
	phase := gamePhase(pos)

	relSq := sq
	if c == board.Black {
		relSq = mirror(sq)
	}

	mg := NominalValue(p) + pstMiddlegame[p][relSq]
	eg := NominalValue(p) + pstEndgame[p][relSq]

	return blend(mg, eg, phase)
}

func gamePhase(pos *board.Position) int {
	phase := 0
	for c := board.Color(0); c < board.NumColors; c++ {
		for p := board.Piece(0); p < board.NumPieces; p++ {
			phase += phaseWeight(p) * countPieces(pos, c, p)
		}
	}
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase
}

func countPieces(pos *board.Position, c board.Color, p board.Piece) int {
	n := 0
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		if pc, role, ok := pos.RoleAt(sq); ok && pc == c && role == p {
			n++
		}
	}
	return n
}

// blend interpolates linearly between the middlegame and endgame scores by phase, where phase
// == totalPhase is "fully middlegame" and phase == 0 is "fully endgame".
func blend(mg, eg board.Score, phase int) board.Score {
	return board.Score((int(mg)*phase + int(eg)*(totalPhase-phase)) / totalPhase)
}

// mirror flips a square vertically, so that Black's piece-square lookups reuse White's tables.
func mirror(sq board.Square) board.Square {
	return board.SquareOf(sq.File(), 7-sq.Rank())
}
