// Package uci contains a line-oriented driver speaking the Universal Chess Interface protocol
// for pkg/engine.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// ProtocolName is the line that selects this driver, per the UCI handshake.
const ProtocolName = "uci"

// defaultDepth is used when a "go" command carries no search-limiting parameter at all.
const defaultDepth = 6

// Driver dispatches UCI protocol lines against an engine.Engine. Activated once "uci" has been
// received on in; produces response lines on the returned channel.
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool
	lastPosition string

	quit   chan struct{}
	closed atomic.Bool
}

// NewDriver starts the driver's processing loop on its own goroutine, consuming in and producing
// out until in is closed or a "quit" command arrives.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:    e,
		out:  out,
		quit: make(chan struct{}),
	}
	go d.process(ctx, in)
	return d, out
}

// Close requests the driver stop; idempotent.
func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

// Closed returns a channel closed once the driver's processing loop has exited.
func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- "option name Hash type spin default 16 min 1 max 4096"
	d.out <- "option name HistFactor type spin default 0 min 0 max 100"
	d.out <- "option name EvalFactor type spin default 0 min 0 max 100"
	d.out <- "option name Threads type spin default 1 min 1 max 1"
	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream closed. Exiting")
				return
			}
			if !d.dispatch(ctx, line) {
				return
			}

		case <-d.quit:
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// dispatch handles a single input line, returning false if the driver should stop.
func (d *Driver) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}

	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "isready":
		d.out <- "readyok"

	case "debug":
		// accepted, no-op: this engine does not emit extra "info string" diagnostics.

	case "setoption":
		d.handleSetOption(ctx, args, line)

	case "register":
		// no-op: this engine requires no registration.

	case "ucinewgame":
		d.ensureInactive(ctx)
		d.lastPosition = ""

	case "position":
		d.handlePosition(ctx, args, line)

	case "go":
		d.handleGo(ctx, args)

	case "stop":
		d.e.Halt(ctx) // the go-routine forwarding iterations for the active search reports completion

	case "ponderhit":
		// not supported: this engine never enters ponder mode.

	case "quit":
		d.ensureInactive(ctx)
		return false

	default:
		logw.Warningf(ctx, "Unknown command %q: %v", cmd, args)
	}

	return true
}

func (d *Driver) handleSetOption(ctx context.Context, args []string, line string) {
	// "setoption name <id> [value <x>]"; <id> may itself contain spaces, so reconstruct it from
	// the tokens between "name" and "value".
	var name, value string
	nameStart := -1
	valueStart := -1
	for i, a := range args {
		switch strings.ToLower(a) {
		case "name":
			nameStart = i + 1
		case "value":
			valueStart = i + 1
		}
	}
	if nameStart >= 0 {
		end := len(args)
		if valueStart > nameStart {
			end = valueStart - 1
		}
		name = strings.Join(args[nameStart:end], " ")
	}
	if valueStart >= 0 && valueStart <= len(args) {
		value = strings.Join(args[valueStart:], " ")
	}

	if err := d.e.SetOption(ctx, name, value); err != nil {
		logw.Warningf(ctx, "setoption rejected: %v: %v", line, err)
	}
}

func (d *Driver) handlePosition(ctx context.Context, args []string, line string) {
	d.ensureInactive(ctx)

	if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
		moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
		for _, arg := range strings.Fields(moves) {
			if arg == "moves" {
				continue
			}
			if err := d.e.Move(ctx, arg); err != nil {
				logw.Errorf(ctx, "Invalid position move %q: %v: %v", arg, line, err)
				return
			}
		}
		d.lastPosition = line
		return
	}

	position := board.Initial
	rest := args
	if len(args) >= 7 && args[0] == "fen" {
		position = strings.Join(args[1:7], " ")
		rest = args[7:]
	} else if len(args) >= 1 && args[0] == "startpos" {
		rest = args[1:]
	}

	if err := d.e.Reset(ctx, position); err != nil {
		logw.Errorf(ctx, "Invalid position: %v: %v", line, err)
		return
	}

	move := false
	for _, arg := range rest {
		if arg == "moves" {
			move = true
			continue
		}
		if !move {
			continue
		}
		if err := d.e.Move(ctx, arg); err != nil {
			logw.Errorf(ctx, "Invalid position move %q: %v: %v", arg, line, err)
			return
		}
	}
	d.lastPosition = line
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	d.ensureInactive(ctx)

	now := time.Now()

	var depthLimit, nodesLimit, movetimeMS int
	var wtimeMS, btimeMS, wincMS, bincMS, movestogo int
	haveDepth, haveNodes, haveMovetime, haveClock, infinite := false, false, false, false, false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "infinite":
			infinite = true
		case "depth", "nodes", "movetime", "wtime", "btime", "winc", "binc", "movestogo":
			if i+1 >= len(args) {
				logw.Errorf(ctx, "Missing argument for %v", args[i])
				return
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				logw.Errorf(ctx, "Invalid argument for %v: %v", args[i], err)
				return
			}
			switch args[i] {
			case "depth":
				depthLimit, haveDepth = n, true
			case "nodes":
				nodesLimit, haveNodes = n, true
			case "movetime":
				movetimeMS, haveMovetime = n, true
			case "wtime":
				wtimeMS, haveClock = n, true
			case "btime":
				btimeMS, haveClock = n, true
			case "winc":
				wincMS = n
			case "binc":
				bincMS = n
			case "movestogo":
				movestogo = n
			}
			i++
		default:
			// searchmoves, ponder and anything else this driver doesn't implement: ignored.
		}
	}

	var deadline *search.Deadline
	switch {
	case infinite:
		deadline = search.NewNoDeadline()
	case haveDepth:
		deadline = search.NewDepthDeadline(depthLimit)
	case haveNodes:
		deadline = search.NewNodesDeadline(uint64(nodesLimit))
	case haveMovetime:
		t := time.Duration(movetimeMS) * time.Millisecond
		deadline = search.NewTimeDeadline(now.Add(t/2), now.Add(t))
	case haveClock:
		timeMS, incMS := wtimeMS, wincMS
		if d.e.Board().Turn() == board.Black {
			timeMS, incMS = btimeMS, bincMS
		}
		deadline = search.NewDeadlineFromClock(now, int64(timeMS), int64(incMS), movestogo)
	default:
		deadline = search.NewDepthDeadline(defaultDepth)
	}

	h, err := d.e.Analyze(ctx, deadline)
	if err != nil {
		logw.Errorf(ctx, "Analyze failed: %v", err)
		return
	}
	d.active.Store(true)

	go func() {
		for it := range h.Iterations() {
			if d.active.Load() {
				d.out <- formatIterationInfo(it)
			}
		}

		// h.Stop is idempotent and always returns this search's authoritative result, regardless
		// of whether "stop" or a later "position"/"ucinewgame" already requested the halt.
		result, pv, _ := h.Stop()
		if d.active.CAS(true, false) {
			d.e.Halt(ctx) // best-effort: drops the engine's bookkeeping reference to this search
			d.reportSearchComplete(result, pv)
		}
	}()
}

func (d *Driver) ensureInactive(ctx context.Context) {
	if d.active.CAS(true, false) {
		d.e.Halt(ctx)
	}
}

func (d *Driver) reportSearchComplete(result search.Result, pv []board.Move) {
	if len(pv) > 0 {
		d.out <- formatInfo(result, pv)
		d.out <- fmt.Sprintf("bestmove %v", pv[0])
	} else {
		d.out <- "bestmove 0000"
	}
}

func formatInfo(result search.Result, pv []board.Move) string {
	parts := []string{"info"}
	if result.Mate {
		parts = append(parts, fmt.Sprintf("score mate %v", result.MateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", result.Centipawns))
	}
	if len(pv) > 0 {
		parts = append(parts, "pv", board.FormatMoves(pv))
	}
	return strings.Join(parts, " ")
}

// formatIterationInfo renders one completed iterative-deepening iteration as a UCI "info" line,
// e.g. "info depth 8 score cp 34 nodes 120384 time 241 nps 499518 hashfull 12 pv e2e4 e7e5".
func formatIterationInfo(it search.Iteration) string {
	parts := []string{"info", fmt.Sprintf("depth %v", it.Depth)}
	if sd := it.Nodes.Seldepth(); sd > it.Depth {
		parts = append(parts, fmt.Sprintf("seldepth %v", sd))
	}
	if it.Result.Mate {
		parts = append(parts, fmt.Sprintf("score mate %v", it.Result.MateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", it.Result.Centipawns))
	}

	nodes := it.Nodes.Searched()
	parts = append(parts, fmt.Sprintf("nodes %v", nodes))
	ms := it.Elapsed.Milliseconds()
	parts = append(parts, fmt.Sprintf("time %v", ms))
	if ms > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", nodes*1000/uint64(ms)))
	}
	parts = append(parts, fmt.Sprintf("hashfull %v", it.Hashfull))

	if len(it.PV) > 0 {
		parts = append(parts, "pv", board.FormatMoves(it.PV))
	}
	return strings.Join(parts, " ")
}
