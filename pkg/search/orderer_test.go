package search

import (
	"testing"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/stretchr/testify/assert"
)

func TestMoveOrderKeyTTMoveSortsFirst(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := posFromFEN(t, zt, board.Initial)
	hist := NewButterflyHistory()

	ttMove := board.Move{From: board.E2, To: board.E4}
	quiet := board.Move{From: board.D2, To: board.D4}

	ttKey := moveOrderKey(pos, ttMove, ttMove, true, hist)
	quietKey := moveOrderKey(pos, quiet, ttMove, true, hist)

	assert.Less(t, ttKey, quietKey)
}

func TestMoveOrderKeyCapturesSortBeforeQuiets(t *testing.T) {
	zt := board.NewZobristTable(1)
	// white pawn on e4 can capture a black pawn on d5; a2-a3 is a quiet push available too
	pos := posFromFEN(t, zt, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	hist := NewButterflyHistory()

	capture := legalMove(t, pos, board.E4, board.D5)
	quiet := legalMove(t, pos, board.A2, board.A3)

	captureKey := moveOrderKey(pos, capture, board.Move{}, false, hist)
	quietKey := moveOrderKey(pos, quiet, board.Move{}, false, hist)

	assert.Less(t, captureKey, quietKey)
}

func TestMoveOrderKeyQuietOrderingFollowsHistory(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := posFromFEN(t, zt, board.Initial)
	hist := NewButterflyHistory()

	a := legalMove(t, pos, board.A2, board.A3)
	b := legalMove(t, pos, board.B2, board.B3)

	hist.update(board.White, a.From, a.To, 5000)

	aKey := moveOrderKey(pos, a, board.Move{}, false, hist)
	bKey := moveOrderKey(pos, b, board.Move{}, false, hist)

	// a move with a higher history score must sort earlier (lower key) than an untouched one
	assert.Less(t, aKey, bKey)
}

func TestMoveOrderKeyVictimValueDominatesAggressorValue(t *testing.T) {
	zt := board.NewZobristTable(1)
	// white king on d1 can capture a knight on c2; white pawn on e6 can capture a bishop on d7.
	// Both victim squares sit on a PST cell worth 0 for their piece, so the victim values are the
	// bare nominal ones: knight 320, bishop 330. The bishop is worth 10cp more, so capturing it
	// must sort first regardless of the capturing piece: a king aggressor must not outweigh that
	// edge the way a victim multiplier no larger than the king's own value would let it.
	pos := posFromFEN(t, zt, "k7/3b4/4P3/8/8/8/2n5/3K4 w - - 0 1")
	hist := NewButterflyHistory()

	kingCapturesKnight := legalMove(t, pos, board.D1, board.C2)
	pawnCapturesBishop := legalMove(t, pos, board.E6, board.D7)

	knightKey := moveOrderKey(pos, kingCapturesKnight, board.Move{}, false, hist)
	bishopKey := moveOrderKey(pos, pawnCapturesBishop, board.Move{}, false, hist)

	assert.Less(t, bishopKey, knightKey)
}

func TestNewMoveSelectorOrdersTTMoveFirst(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos := posFromFEN(t, zt, board.Initial)
	hist := NewButterflyHistory()

	ttMove := legalMove(t, pos, board.G1, board.F3)
	sel := newMoveSelector(pos, pos.LegalMoves(), ttMove, true, hist)

	first, ok := sel.next()
	assert.True(t, ok)
	assert.True(t, first.Equals(ttMove))
}
