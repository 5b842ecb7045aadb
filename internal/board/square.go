package board

import "fmt"

// Square identifies a board square, A1=0 .. H8=63, rank-major: sq = rank*8 + file. 6 bits.
type Square uint8

const (
	NumSquares = 64

	// InvalidSquare marks "no square", e.g. an absent en passant target.
	InvalidSquare Square = 64
)

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// SquareOf returns the square for the given zero-based file (0=a..7=h) and rank (0=1st..7=8th).
func SquareOf(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int {
	return int(s) % 8
}

func (s Square) Rank() int {
	return int(s) / 8
}

// OnBoard reports whether the given (possibly out-of-range) file/rank pair is a real square.
func OnBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return InvalidSquare, fmt.Errorf("invalid square: %q", str)
	}
	file := int(str[0] - 'a')
	rank := int(str[1] - '1')
	if !OnBoard(file, rank) {
		return InvalidSquare, fmt.Errorf("invalid square: %q", str)
	}
	return SquareOf(file, rank), nil
}

func (s Square) String() string {
	if s >= NumSquares {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+rune(s.File()), '1'+rune(s.Rank()))
}
