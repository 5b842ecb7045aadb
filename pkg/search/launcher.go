// Package search implements the engine's core: iterative-deepening negamax alpha-beta search
// with quiescence, a shared transposition table, butterfly move-ordering history, aspiration
// windows, internal iterative deepening and a cooperative deadline model. It has no notion of
// UCI, process entry points or CLI; pkg/engine and pkg/uci are the shell around it.
package search

import (
	"sync"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Launch starts Search on its own goroutine and returns a Handle the caller uses to retrieve
// the latest completed iteration and to stop the search, mirroring the single-search-thread
// model of §5: the caller (the UCI command loop) and the searcher share only the TT and the
// Deadline's stop flag. The init/done signaling mirrors searchctl.Iterative's own handle in the
// teacher, which uses the same iox.AsyncCloser pair for "first iteration ready" and "goroutine
// has returned".
func Launch(root *board.Position, history []*board.Position, deadline *Deadline, tt *TranspositionTable, cfg Config, hist *ButterflyHistory) *Handle {
	h := &Handle{
		init:       iox.NewAsyncCloser(),
		done:       iox.NewAsyncCloser(),
		iterations: make(chan Iteration, 256),
		deadline:   deadline,
	}
	go h.run(root, history, deadline, tt, cfg, hist)
	return h
}

// Handle lets the caller observe progress and stop a Launch-ed search. Safe for concurrent use.
type Handle struct {
	init iox.AsyncCloser
	done iox.AsyncCloser

	iterations chan Iteration

	mu     sync.Mutex
	latest Iteration

	deadline *Deadline

	final      Result
	finalPV    []board.Move
	finalNodes *NodeCount
}

func (h *Handle) run(root *board.Position, history []*board.Position, deadline *Deadline, tt *TranspositionTable, cfg Config, hist *ButterflyHistory) {
	defer h.done.Close()
	defer close(h.iterations)

	result, pv, nodes := Search(root, history, deadline, tt, cfg, hist, func(it Iteration) {
		h.mu.Lock()
		h.latest = it
		h.mu.Unlock()
		h.init.Close()

		select {
		case h.iterations <- it:
		default:
			// a slow consumer only misses intermediate progress; Latest/Stop still see the result.
		}
	})

	h.mu.Lock()
	h.final, h.finalPV, h.finalNodes = result, pv, nodes
	h.mu.Unlock()
	h.init.Close()
}

// Latest returns the most recently completed iteration, blocking until at least one has
// completed (or the search has already finished with zero legal moves).
func (h *Handle) Latest() Iteration {
	<-h.init.Closed()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Stop requests the search halt at the next hard-deadline poll and blocks until it has,
// returning the final result. Idempotent.
func (h *Handle) Stop() (Result, []board.Move, *NodeCount) {
	h.deadline.Stop()
	<-h.done.Closed()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.final, h.finalPV, h.finalNodes
}

// Done returns a channel closed once the search has fully returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done.Closed()
}

// Iterations streams each completed iteration as the search finds it, closed once the search
// returns. A slow consumer may miss intermediate iterations (Latest and Stop are unaffected).
func (h *Handle) Iterations() <-chan Iteration {
	return h.iterations
}
