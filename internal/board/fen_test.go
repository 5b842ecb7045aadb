package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInitialPosition(t *testing.T) {
	zt := NewZobristTable(1)
	pos, turn, halfmove, fullmove, err := Decode(zt, Initial)
	require.NoError(t, err)

	assert.Equal(t, White, turn)
	assert.Equal(t, 0, halfmove)
	assert.Equal(t, 1, fullmove)
	assert.Equal(t, FullCastling, pos.Castling())

	_, ok := pos.EnPassant()
	assert.False(t, ok)

	c, piece, ok := pos.RoleAt(E1)
	require.True(t, ok)
	assert.Equal(t, White, c)
	assert.Equal(t, King, piece)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	zt := NewZobristTable(2)
	pos, turn, halfmove, fullmove, err := Decode(zt, Initial)
	require.NoError(t, err)

	fen := Encode(pos, turn, halfmove, fullmove)
	assert.Equal(t, Initial, fen)

	pos2, turn2, halfmove2, fullmove2, err := Decode(zt, fen)
	require.NoError(t, err)

	assert.True(t, pos.Equal(pos2))
	assert.Equal(t, turn, turn2)
	assert.Equal(t, halfmove, halfmove2)
	assert.Equal(t, fullmove, fullmove2)
}

func TestEncodeDecodeRoundTripAfterMoves(t *testing.T) {
	zt := NewZobristTable(3)
	pos, turn, halfmove, fullmove, err := Decode(zt, Initial)
	require.NoError(t, err)

	m, err := ParseMove("e2e4")
	require.NoError(t, err)
	legal := matchLegal(t, pos, m)
	pos = pos.Apply(legal)
	turn = turn.Opponent()
	halfmove = 0
	fullmove = 1

	fen := Encode(pos, turn, halfmove, fullmove)
	pos2, turn2, halfmove2, fullmove2, err := Decode(zt, fen)
	require.NoError(t, err)

	assert.True(t, pos.Equal(pos2))
	assert.Equal(t, turn, turn2)
	assert.Equal(t, halfmove, halfmove2)
	assert.Equal(t, fullmove, fullmove2)

	epSq, ok := pos2.EnPassant()
	require.True(t, ok)
	assert.Equal(t, E3, epSq)
}

func TestDecodeMalformed(t *testing.T) {
	zt := NewZobristTable(4)

	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0", // missing field
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side to move
		"8/8/8/8/8/8/8/8 w - - 0 1",                                // no kings
		"rnbqkXnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // bad piece letter
	}
	for _, fen := range cases {
		_, _, _, _, err := Decode(zt, fen)
		assert.Error(t, err, fen)
	}
}

func matchLegal(t *testing.T, pos *Position, m Move) Move {
	t.Helper()
	for _, legal := range pos.LegalMoves() {
		if legal.Equals(m) {
			return legal
		}
	}
	t.Fatalf("move %v not legal in %v", m, pos)
	return Move{}
}
