// Package engine owns the mutable game state a UCI session needs across multiple "go" commands:
// the current board, the shared transposition table, and the butterfly history table, and wires
// them into pkg/search's Launch/Handle for starting and halting searches.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are the UCI-configurable engine settings (§4.11).
type Options struct {
	// Hash is the transposition table size in MiB.
	Hash uint
	// HistFactor and EvalFactor are accepted for UCI compatibility but never consulted: an open
	// question of spec.md §9, resolved by documenting them as inert rather than wiring them to
	// nothing silently.
	HistFactor uint
	EvalFactor uint
	// Threads must be 1: this engine searches with a single goroutine (§5 non-goal).
	Threads uint
}

func (o Options) String() string {
	return fmt.Sprintf("{hash=%vMB, histFactor=%v, evalFactor=%v, threads=%v}", o.Hash, o.HistFactor, o.EvalFactor, o.Threads)
}

func defaultOptions() Options {
	return Options{Hash: 16, Threads: 1}
}

// Engine is the single-game-at-a-time owner of the board, TT and history table. Not safe for
// concurrent use by multiple goroutines beyond the one active search it launches.
type Engine struct {
	name, author string
	zt           *board.ZobristTable
	seed         int64

	mu     sync.Mutex
	opts   Options
	b      *board.Board
	tt     *search.TranspositionTable
	hist   *search.ButterflyHistory
	active *search.Handle
}

// Option is an engine creation option.
type Option func(*Engine)

// WithZobristSeed configures the engine to use the given random seed instead of the default seed
// of zero, useful for deterministic tests.
func WithZobristSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithOptions sets the engine's default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// New constructs an engine at the standard starting position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		opts:   defaultOptions(),
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)
	e.hist = search.NewButterflyHistory()

	_ = e.Reset(ctx, board.Initial)

	logw.Infof(ctx, "Initialized engine %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version, for the UCI "id name" response.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author, for the UCI "id author" response.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// SetOption implements the four configurable UCI options of spec.md §6 (§4.11): Hash rebuilds
// the transposition table; HistFactor/EvalFactor are accepted and stored but never consulted;
// Threads rejects any value other than 1.
func (e *Engine) SetOption(ctx context.Context, name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "SetOption %v=%v", name, value)

	switch name {
	case "Hash":
		n, err := parseUint(value)
		if err != nil {
			return fmt.Errorf("invalid Hash value %q: %w", value, err)
		}
		e.opts.Hash = n
		e.tt = search.NewTranspositionTableMiB(uint(n))

	case "HistFactor":
		n, err := parseUint(value)
		if err != nil {
			return fmt.Errorf("invalid HistFactor value %q: %w", value, err)
		}
		e.opts.HistFactor = n

	case "EvalFactor":
		n, err := parseUint(value)
		if err != nil {
			return fmt.Errorf("invalid EvalFactor value %q: %w", value, err)
		}
		e.opts.EvalFactor = n

	case "Threads":
		n, err := parseUint(value)
		if err != nil || n != 1 {
			return fmt.Errorf("unsupported Threads value %q: this engine searches single-threaded", value)
		}
		e.opts.Threads = n

	default:
		return fmt.Errorf("unknown option %q", name)
	}
	return nil
}

func parseUint(s string) (uint, error) {
	var n uint
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	return n, nil
}

// Board returns a forked copy of the current board, safe for the caller to inspect or mutate
// without affecting the engine's own game state.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.b.Fork()
}

// Position returns the current position in FEN, a convenience for logging and the UCI driver.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	pos := e.b.Position()
	return board.Encode(pos, e.b.Turn(), pos.HalfmoveClock(), e.b.FullMoves())
}

// Reset resets the engine to a new starting position given in FEN, halting any active search.
func (e *Engine) Reset(ctx context.Context, fen string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	pos, turn, _, fullmove, err := board.Decode(e.zt, fen)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(e.zt, pos, turn, fullmove)

	if e.tt == nil {
		e.tt = search.NewTranspositionTableMiB(e.opts.Hash)
	}

	logw.Infof(ctx, "Reset %v", fen)
	return nil
}

// Move plays move (e.g. "e2e4", "a7a8q") against the current position, usually an opponent move
// relayed by the UCI controller's "position ... moves ..." line.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltSearchIfActive(ctx)

	if !e.b.PushMove(candidate) {
		return fmt.Errorf("illegal move: %v", candidate)
	}

	logw.Infof(ctx, "Move %v", candidate)
	return nil
}

// Analyze launches a search on the current position under deadline, returning a Handle the
// caller polls for iterations and uses to halt it.
func (e *Engine) Analyze(ctx context.Context, deadline *search.Deadline) (*search.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	forked := e.b.Fork()
	history := forked.HistorySinceZeroing()

	logw.Infof(ctx, "Analyze %v", forked)

	h := search.Launch(forked.Position(), history, deadline, e.tt, search.Config{
		HistFactor: int(e.opts.HistFactor),
		EvalFactor: int(e.opts.EvalFactor),
	}, e.hist)
	e.active = h
	return h, nil
}

// Halt stops the active search, if any, and returns its final result.
func (e *Engine) Halt(ctx context.Context) (search.Result, []board.Move, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.haltSearchIfActive(ctx)
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.Result, []board.Move, bool) {
	if e.active == nil {
		return search.Result{}, nil, false
	}
	result, pv, _ := e.active.Stop()
	e.active = nil

	logw.Infof(ctx, "Search halted: %v", result)
	return result, pv, true
}
