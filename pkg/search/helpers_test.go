package search

import (
	"testing"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/stretchr/testify/require"
)

// posFromFEN decodes a FEN into a *board.Position for test setup, failing the test on error.
func posFromFEN(t *testing.T, zt *board.ZobristTable, fen string) *board.Position {
	t.Helper()
	pos, _, _, _, err := board.Decode(zt, fen)
	require.NoError(t, err)
	return pos
}

func legalMove(t *testing.T, pos *board.Position, from, to board.Square) board.Move {
	t.Helper()
	for _, m := range pos.LegalMoves() {
		if m.From == from && m.To == to {
			return m
		}
	}
	t.Fatalf("no legal move %v-%v in %v", from, to, pos)
	return board.Move{}
}
