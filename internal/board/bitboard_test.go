package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitboardSetAndCount(t *testing.T) {
	b := BitMask(A1) | BitMask(H8)
	assert.True(t, b.IsSet(A1))
	assert.True(t, b.IsSet(H8))
	assert.False(t, b.IsSet(E4))
	assert.Equal(t, 2, b.PopCount())
}

func TestBitboardPopLSB(t *testing.T) {
	b := BitMask(D4) | BitMask(A1)
	sq, rest := b.PopLSB()
	assert.Equal(t, A1, sq)
	assert.Equal(t, 1, rest.PopCount())
	assert.True(t, rest.IsSet(D4))
}

func TestBitboardToSquares(t *testing.T) {
	b := BitMask(A1) | BitMask(D4) | BitMask(H8)
	assert.Equal(t, []Square{A1, D4, H8}, b.ToSquares())
}

func TestKnightAttacksCorner(t *testing.T) {
	attacks := KnightAttacks(A1)
	assert.Equal(t, 2, attacks.PopCount())
	assert.True(t, attacks.IsSet(B3))
	assert.True(t, attacks.IsSet(C2))
}

func TestKingAttacksCenter(t *testing.T) {
	attacks := KingAttacks(E4)
	assert.Equal(t, 8, attacks.PopCount())
}

func TestRookAttacksBlocked(t *testing.T) {
	occ := BitMask(E1) | BitMask(E6) | BitMask(A4) | BitMask(H4)
	attacks := RookAttacks(E4, occ)
	// Up to and including the blocker at e6, down to and including e1, and across the full rank.
	assert.True(t, attacks.IsSet(E5))
	assert.True(t, attacks.IsSet(E6))
	assert.False(t, attacks.IsSet(E7))
	assert.True(t, attacks.IsSet(E1))
	assert.True(t, attacks.IsSet(A4))
	assert.True(t, attacks.IsSet(H4))
}

func TestBishopAttacksOpenBoard(t *testing.T) {
	attacks := BishopAttacks(D4, EmptyBitboard)
	assert.True(t, attacks.IsSet(A1))
	assert.True(t, attacks.IsSet(G7))
	assert.True(t, attacks.IsSet(A7))
	assert.True(t, attacks.IsSet(F2))
	assert.False(t, attacks.IsSet(D5))
}

func TestPawnCaptureTargets(t *testing.T) {
	white := PawnCaptureTargets(White, E4)
	assert.True(t, white.IsSet(D5))
	assert.True(t, white.IsSet(F5))
	assert.Equal(t, 2, white.PopCount())

	black := PawnCaptureTargets(Black, E4)
	assert.True(t, black.IsSet(D3))
	assert.True(t, black.IsSet(F3))
}

func TestBitRankAndFile(t *testing.T) {
	assert.Equal(t, 8, BitRank(3).PopCount())
	assert.Equal(t, 8, BitFile(3).PopCount())
	assert.True(t, BitRank(0).IsSet(A1))
	assert.True(t, BitFile(0).IsSet(A1))
}
