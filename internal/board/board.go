package board

import "fmt"

const (
	repetitionDrawCount = 3
	noProgressDrawClock = 100
)

// GameResult records why a game ended, if it has.
type GameResult struct {
	Over   bool
	Winner Color // only meaningful if Over and Reason == "checkmate"
	Reason string
}

type node struct {
	pos  *Position
	hash uint64
	prev *node
	next Move // move leading to the following node, if any
}

// Board wraps a Position with the game-level bookkeeping a UCI session needs across many moves:
// full-move counting, a repetition table for `position ... moves ...` replays, and takeback
// support. It is a distinct concern from the search engine's own per-call history_stack (§4.6):
// that one tracks repetition only within the lines a single search explores, and is cleared on
// zeroing moves; this one spans an entire game. Not thread-safe, mirroring the teacher's Board.
type Board struct {
	zt          *ZobristTable
	repetitions map[uint64]int
	fullmoves   int
	turn        Color
	result      GameResult
	current     *node
}

func NewBoard(zt *ZobristTable, pos *Position, turn Color, fullmoves int) *Board {
	cur := &node{pos: pos, hash: pos.Zobrist()}
	return &Board{
		zt:          zt,
		repetitions: map[uint64]int{cur.hash: 1},
		fullmoves:   fullmoves,
		turn:        turn,
		current:     cur,
	}
}

// Fork branches a new Board sharing the history chain for past positions. The fork's own
// repetition counts are copied so pushing moves on the fork does not perturb the original.
func (b *Board) Fork() *Board {
	reps := make(map[uint64]int, len(b.repetitions))
	for k, v := range b.repetitions {
		reps[k] = v
	}
	return &Board{
		zt:          b.zt,
		repetitions: reps,
		fullmoves:   b.fullmoves,
		turn:        b.turn,
		result:      b.result,
		current:     b.current,
	}
}

func (b *Board) Position() *Position  { return b.current.pos }
func (b *Board) Turn() Color          { return b.turn }
func (b *Board) FullMoves() int       { return b.fullmoves }
func (b *Board) Result() GameResult   { return b.result }
func (b *Board) Hash() uint64         { return b.current.hash }

// HistorySinceZeroing returns the ancestor positions reachable from the current one without
// passing through a pawn move or capture, oldest first, excluding the current position itself.
// This is the history_stack a search call seeds itself with (§4.6.8): repetitions older than the
// last irreversible move can never recur.
func (b *Board) HistorySinceZeroing() []*Position {
	var hist []*Position
	n := b.current
	for n.prev != nil && !n.prev.next.IsZeroing() {
		hist = append(hist, n.prev.pos)
		n = n.prev
	}
	for i, j := 0, len(hist)-1; i < j; i, j = i+1, j-1 {
		hist[i], hist[j] = hist[j], hist[i]
	}
	return hist
}

// PushMove attempts to play m, validating it is legal in the current position. Returns false
// (no state change) if m is not legal.
func (b *Board) PushMove(m Move) bool {
	if b.result.Over {
		return false
	}

	found := false
	for _, legal := range b.Position().LegalMoves() {
		if legal.Equals(m) {
			m, found = legal, true
			break
		}
	}
	if !found {
		return false
	}

	next := b.Position().Apply(m)
	n := &node{pos: next, hash: next.Zobrist(), prev: b.current}

	b.current.next = m
	b.current = n
	b.turn = b.turn.Opponent()
	if b.turn == White {
		b.fullmoves++
	}
	b.repetitions[n.hash]++

	b.adjudicate()
	return true
}

// PopMove undoes the last move, if any.
func (b *Board) PopMove() (Move, bool) {
	if b.current.prev == nil {
		return Move{}, false
	}

	b.repetitions[b.current.hash]--
	b.turn = b.turn.Opponent()
	if b.turn == Black {
		b.fullmoves--
	}

	m := b.current.prev.next
	b.current.prev.next = Move{}
	b.current = b.current.prev
	b.result = GameResult{}
	return m, true
}

func (b *Board) adjudicate() {
	pos := b.Position()

	if b.repetitions[b.current.hash] >= repetitionDrawCount {
		b.result = GameResult{Over: true, Reason: "threefold repetition"}
		return
	}
	if pos.HalfmoveClock() >= noProgressDrawClock {
		b.result = GameResult{Over: true, Reason: "fifty-move rule"}
		return
	}
	if len(pos.LegalMoves()) == 0 {
		if pos.IsCheck() {
			b.result = GameResult{Over: true, Winner: b.turn.Opponent(), Reason: "checkmate"}
		} else {
			b.result = GameResult{Over: true, Reason: "stalemate"}
		}
	}
}

func (b *Board) String() string {
	return fmt.Sprintf("board{%v turn=%v fullmoves=%v result=%+v}", b.Position(), b.turn, b.fullmoves, b.result)
}
