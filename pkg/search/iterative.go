package search

import (
	"time"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/internal/eval"
)

// fullWindow is the unbounded alpha-beta window a re-search falls back to when an aspiration
// window fails to hold (§4.8), kept one away from board.Score's int16 extremes so negation
// never overflows.
const (
	fullWindowLow  board.Score = -32767
	fullWindowHigh board.Score = 32766

	aspirationMargin board.Score = 50
)

// Iteration is what the driver reports to its callback once per completed depth, matching the
// callback contract of §4.8 and §6.
type Iteration struct {
	Depth    int
	Result   Result
	PV       []board.Move
	Nodes    *NodeCount
	Hashfull int
	Elapsed  time.Duration
}

// Callback is invoked once per completed iterative-deepening iteration, and once more with the
// last accepted result when a hard deadline cuts a search short mid-iteration.
type Callback func(Iteration)

// Search runs aspiration-windowed iterative deepening negamax alpha-beta from root, reporting
// each completed iteration to callback, until deadline stops it. It is the sole entry point
// the UCI shell calls into the core (§6): search(root, history, deadline, tt, config,
// history_table, callback) -> (Score, PV, NodeCount).
func Search(root *board.Position, history []*board.Position, deadline *Deadline, tt *TranspositionTable, cfg Config, hist *ButterflyHistory, callback Callback) (Result, []board.Move, *NodeCount) {
	r := &run{
		tt:       tt,
		hist:     hist,
		pv:       &pvBuffer{},
		nodes:    &NodeCount{},
		deadline: deadline,
		cfg:      cfg,
		start:    time.Now(),
	}

	// A terminal or already-drawn root has no move loop to produce a PV, so it can never satisfy
	// the "len(pv) > 0" soft-stop check below: deepening further never changes the score, and
	// under a Depth/NoDeadline this would otherwise spin the loop forever (§8 property 6, §4.12's
	// "bestmove 0000" path requires Search to actually return).
	if score, ok := terminalRootScore(root, history); ok {
		result := convertScore(score)
		r.nodes.addNode()
		callback(Iteration{
			Depth:    1,
			Result:   result,
			Nodes:    r.nodes,
			Hashfull: tt.Hashfull(),
			Elapsed:  time.Since(r.start),
		})
		return result, nil, r.nodes
	}

	score := eval.Evaluate(root)
	var pv []board.Move
	timedOut := false

	for d := 1; ; d++ {
		alpha, beta := score-aspirationMargin, score+aspirationMargin

		s := r.negamax(root, history, d, 0, alpha, beta)
		if s == TimeoutSentinel {
			timedOut = true
			break
		}
		if !(alpha < s && s < beta) {
			s = r.negamax(root, history, d, 0, fullWindowLow, fullWindowHigh)
			if s == TimeoutSentinel {
				timedOut = true
				break
			}
		}

		score = s
		pv = r.pv.line(0)

		callback(Iteration{
			Depth:    d,
			Result:   convertScore(score),
			PV:       pv,
			Nodes:    r.nodes,
			Hashfull: tt.Hashfull(),
			Elapsed:  time.Since(r.start),
		})

		if len(pv) > 0 && deadline.CheckSoft(time.Now(), r.nodes.Searched(), d) {
			break
		}
	}

	result := convertScore(score)
	if timedOut {
		// Final callback carrying the last iteration accepted before the hard deadline cut the
		// current one short (§4.8.c).
		callback(Iteration{
			Result:   result,
			PV:       pv,
			Nodes:    r.nodes,
			Hashfull: tt.Hashfull(),
			Elapsed:  time.Since(r.start),
		})
	}

	return result, pv, r.nodes
}

// terminalRootScore reports the score of root if it is already terminal (no legal moves) or
// immediately drawn (a repetition or fifty-move-clock draw against history), mirroring negamax's
// own root-level checks (negamax.go) exactly, so a root that would return here short-circuits
// before ever reaching negamax's move loop instead of looping on an empty PV.
func terminalRootScore(pos *board.Position, history []*board.Position) (board.Score, bool) {
	if len(pos.LegalMoves()) == 0 {
		if pos.IsCheck() {
			return MatedIn0, true
		}
		return 0, true
	}

	repeats := 0
	for _, h := range history {
		if h.Equal(pos) {
			repeats++
		}
	}
	if repeats >= 2 {
		return 0, true
	}
	if pos.HalfmoveClock() >= 100 {
		return 0, true
	}

	return 0, false
}
