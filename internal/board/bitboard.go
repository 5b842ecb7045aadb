package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a bit-wise set of squares. Bit i corresponds to Square(i). Relies on CPU support
// for popcount and bit-scan, same as the teacher's representation, but indexed A1=bit0.
type Bitboard uint64

const EmptyBitboard Bitboard = 0

func BitMask(sq Square) Bitboard {
	return Bitboard(1) << uint(sq)
}

func (b Bitboard) IsSet(sq Square) bool {
	return b&BitMask(sq) != 0
}

func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// PopLSB returns the lowest set square and the bitboard with that bit cleared. Only valid
// when b != 0.
func (b Bitboard) PopLSB() (Square, Bitboard) {
	sq := Square(bits.TrailingZeros64(uint64(b)))
	return sq, b &^ BitMask(sq)
}

// ToSquares expands the bitboard into its member squares, low to high.
func (b Bitboard) ToSquares() []Square {
	var ret []Square
	for b != 0 {
		var sq Square
		sq, b = b.PopLSB()
		ret = append(ret, sq)
	}
	return ret
}

func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.IsSet(SquareOf(file, rank)) {
				sb.WriteRune('X')
			} else {
				sb.WriteRune('-')
			}
		}
		if rank != 0 {
			sb.WriteRune('/')
		}
	}
	return sb.String()
}

var (
	knightAttacks [NumSquares]Bitboard
	kingAttacks   [NumSquares]Bitboard
)

var knightDeltas = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingDeltas = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// rookDeltas and bishopDeltas drive the classical (non-magic) ray walk used for sliding piece
// attacks: step until off-board or blocked, including the blocker itself (so captures work).
var rookDeltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDeltas = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func init() {
	for sq := Square(0); sq < NumSquares; sq++ {
		file, rank := sq.File(), sq.Rank()

		var n, k Bitboard
		for _, d := range knightDeltas {
			if f, r := file+d[0], rank+d[1]; OnBoard(f, r) {
				n |= BitMask(SquareOf(f, r))
			}
		}
		for _, d := range kingDeltas {
			if f, r := file+d[0], rank+d[1]; OnBoard(f, r) {
				k |= BitMask(SquareOf(f, r))
			}
		}
		knightAttacks[sq] = n
		kingAttacks[sq] = k
	}
}

func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// slidingAttacks walks each of the given directions from sq until it runs off the board or hits
// an occupied square (inclusive of that square, since it may be a capture).
func slidingAttacks(sq Square, occupied Bitboard, deltas [4][2]int) Bitboard {
	var ret Bitboard
	file, rank := sq.File(), sq.Rank()

	for _, d := range deltas {
		f, r := file+d[0], rank+d[1]
		for OnBoard(f, r) {
			to := SquareOf(f, r)
			ret |= BitMask(to)
			if occupied.IsSet(to) {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return ret
}

func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, occupied, bishopDeltas)
}

func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, occupied, rookDeltas)
}

func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// PawnCaptureTargets returns the squares a pawn of the given color standing on sq attacks.
func PawnCaptureTargets(c Color, sq Square) Bitboard {
	file, rank := sq.File(), sq.Rank()
	dir := 1
	if c == Black {
		dir = -1
	}

	var ret Bitboard
	if OnBoard(file-1, rank+dir) {
		ret |= BitMask(SquareOf(file-1, rank+dir))
	}
	if OnBoard(file+1, rank+dir) {
		ret |= BitMask(SquareOf(file+1, rank+dir))
	}
	return ret
}

func BitRank(rank int) Bitboard {
	return Bitboard(0xff) << uint(rank*8)
}

func BitFile(file int) Bitboard {
	return Bitboard(0x0101010101010101) << uint(file)
}
