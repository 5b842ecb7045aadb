package search

import (
	"time"

	"go.uber.org/atomic"
)

// Kind identifies which termination rule a Deadline enforces.
type Kind uint8

const (
	// NoDeadline never stops the search on its own; only an explicit Stop does.
	NoDeadline Kind = iota
	// DepthDeadline stops once a completed iteration reaches the target depth.
	DepthDeadline
	// NodesDeadline stops once the searched node count reaches the target.
	NodesDeadline
	// TimeDeadline stops at soft/hard wall-clock instants.
	TimeDeadline
)

// Deadline converts a time control into soft/hard stop predicates over (wall-time, nodes,
// depth). Soft is polled between iterative-deepening iterations; hard is polled inside Negamax.
// Both predicates are monotone: once true for a given search, they remain true, since they are
// derived from strictly advancing clocks/counters plus a latched external Stop.
type Deadline struct {
	kind       Kind
	depth      int
	nodes      uint64
	soft, hard time.Time

	stop atomic.Bool
}

// NewDepthDeadline stops after the given depth completes.
func NewDepthDeadline(depth int) *Deadline {
	return &Deadline{kind: DepthDeadline, depth: depth}
}

// NewNodesDeadline stops once searched_nodes >= n.
func NewNodesDeadline(n uint64) *Deadline {
	return &Deadline{kind: NodesDeadline, nodes: n}
}

// NewTimeDeadline stops at the hard instant, softly preferring to stop at the soft instant
// between iterations.
func NewTimeDeadline(soft, hard time.Time) *Deadline {
	return &Deadline{kind: TimeDeadline, soft: soft, hard: hard}
}

// NewNoDeadline never stops the search except via an explicit Stop.
func NewNoDeadline() *Deadline {
	return &Deadline{kind: NoDeadline}
}

// NewDeadlineFromClock implements the UCI `go wtime/btime/winc/binc/movestogo` clock formula:
// soft_ms := time_ms/(M+10) + inc_ms/5, hard_ms := time_ms/M + inc_ms, where M defaults to 20
// moves-to-go when the controller does not supply one.
func NewDeadlineFromClock(now time.Time, timeMS, incMS int64, movesToGo int) *Deadline {
	m := int64(movesToGo)
	if movesToGo <= 0 {
		m = 20
	}
	softMS := timeMS/(m+10) + incMS/5
	hardMS := timeMS/m + incMS
	return NewTimeDeadline(now.Add(time.Duration(softMS)*time.Millisecond), now.Add(time.Duration(hardMS)*time.Millisecond))
}

// Stop latches the external stop flag. Idempotent; safe to call from another goroutine.
func (d *Deadline) Stop() {
	d.stop.Store(true)
}

// Stopped reports whether Stop has been called.
func (d *Deadline) Stopped() bool {
	return d.stop.Load()
}

// CheckHard reports whether the hard limit (or the external stop flag) has tripped. Polled
// inside Negamax, so it must be cheap.
func (d *Deadline) CheckHard(now time.Time, nodes uint64) bool {
	if d.stop.Load() {
		return true
	}
	switch d.kind {
	case NodesDeadline:
		return nodes >= d.nodes
	case TimeDeadline:
		return !now.Before(d.hard)
	default:
		return false
	}
}

// CheckSoft reports whether the search should not start another iterative-deepening
// iteration, given the depth just completed.
func (d *Deadline) CheckSoft(now time.Time, nodes uint64, depth int) bool {
	if d.stop.Load() {
		return true
	}
	switch d.kind {
	case DepthDeadline:
		return depth >= d.depth
	case NodesDeadline:
		return nodes >= d.nodes
	case TimeDeadline:
		return !now.Before(d.soft)
	default:
		return false
	}
}
