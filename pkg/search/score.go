package search

import (
	"fmt"

	"github.com/corvidchess/corvid/internal/board"
)

const (
	// Mate is the maximum magnitude a mate score may carry (§4.6). Scores are always clamped
	// well inside int16's range so TimeoutSentinel remains unambiguous.
	Mate board.Score = 32700
	// MatedIn0 is returned at a node with no legal moves while in check: mate in zero plies
	// from that node's perspective.
	MatedIn0 board.Score = -Mate
	// TimeoutSentinel is a reserved value a normal evaluation must never produce; it signals
	// that a hard-deadline trip is unwinding the call stack (§4.6, §9).
	TimeoutSentinel board.Score = -32768

	infinity board.Score = 32767
)

// mateThreshold is the boundary above (below, negated) which a score is considered a mate
// score for reporting purposes, matching the driver's convert_score rule in §4.8.
const mateThreshold = 32000

// shrinkMate applies the one-ply mate-distance shrink described in §4.6.12: a score closer to
// Mate in magnitude is moved one step toward zero before being stored in the TT, so that the
// distance-to-mate it encodes is always relative to the node that produced it, not the root.
func shrinkMate(s board.Score) board.Score {
	switch {
	case s < -32500:
		return s + 1
	case s > 32500:
		return s - 1
	default:
		return s
	}
}

// Result is the tagged score the search reports to callers: either a centipawn evaluation or a
// forced mate in n (moves, not plies), matching §3's Score variant.
type Result struct {
	Mate       bool
	Centipawns int
	MateIn     int // only meaningful if Mate; positive = side to move mates, negative = is mated
}

func (r Result) String() string {
	if r.Mate {
		return fmt.Sprintf("mate(%v)", r.MateIn)
	}
	return fmt.Sprintf("cp(%v)", r.Centipawns)
}

// convertScore maps an internal node-relative score into the externally reported Result, per
// the driver's convert_score rule (§4.8).
func convertScore(s board.Score) Result {
	switch {
	case s > mateThreshold:
		return Result{Mate: true, MateIn: int((32701 - s) / 2)}
	case s < -mateThreshold:
		return Result{Mate: true, MateIn: -int((32700 + s) / 2)}
	default:
		return Result{Centipawns: int(s)}
	}
}
