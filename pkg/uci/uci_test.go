package uci

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T) (chan string, <-chan string) {
	t.Helper()
	e := engine.New(context.Background(), "corvid-test", "test-author", engine.WithZobristSeed(1))
	in := make(chan string, 16)
	_, out := NewDriver(context.Background(), e, in)
	return in, out
}

func collectUntil(t *testing.T, out <-chan string, want string, timeout time.Duration) []string {
	t.Helper()
	deadline := time.After(timeout)
	var lines []string
	for {
		select {
		case line := <-out:
			lines = append(lines, line)
			if line == want || strings.HasPrefix(line, want) {
				return lines
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q; saw: %v", want, lines)
		}
	}
}

func TestDriverHandshake(t *testing.T) {
	in, out := newTestDriver(t)
	defer close(in)

	lines := collectUntil(t, out, "uciok", time.Second)

	assert.Contains(t, lines[0], "id name corvid-test")
	assert.Contains(t, lines[1], "id author test-author")
	assert.Contains(t, lines, "uciok")
	found := false
	for _, l := range lines {
		if strings.HasPrefix(l, "option name Hash") {
			found = true
		}
	}
	assert.True(t, found, "expected a Hash option line, got %v", lines)
}

func TestDriverIsReady(t *testing.T) {
	in, out := newTestDriver(t)
	defer close(in)

	collectUntil(t, out, "uciok", time.Second)

	in <- "isready"
	lines := collectUntil(t, out, "readyok", time.Second)
	assert.Contains(t, lines, "readyok")
}

func TestDriverGoDepthReportsBestmove(t *testing.T) {
	in, out := newTestDriver(t)
	defer close(in)

	collectUntil(t, out, "uciok", time.Second)

	in <- "position startpos"
	in <- "go depth 2"

	lines := collectUntil(t, out, "bestmove", 5*time.Second)

	var best string
	for _, l := range lines {
		if strings.HasPrefix(l, "bestmove") {
			best = l
		}
	}
	require.NotEmpty(t, best)
	fields := strings.Fields(best)
	require.Len(t, fields, 2)
	assert.Len(t, fields[1], 4) // e.g. "e2e4": from+to squares, no promotion on move 1
}

func TestDriverStopHaltsSearchAndReportsOnce(t *testing.T) {
	in, out := newTestDriver(t)
	defer close(in)

	collectUntil(t, out, "uciok", time.Second)

	in <- "position startpos"
	in <- "go infinite"

	time.Sleep(50 * time.Millisecond)
	in <- "stop"

	lines := collectUntil(t, out, "bestmove", 5*time.Second)

	count := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "bestmove") {
			count++
		}
	}
	assert.Equal(t, 1, count, "expected exactly one bestmove line, got %v", lines)
}

func TestDriverSetOptionHash(t *testing.T) {
	in, out := newTestDriver(t)
	defer close(in)

	collectUntil(t, out, "uciok", time.Second)

	in <- "setoption name Hash value 4"
	in <- "isready"
	lines := collectUntil(t, out, "readyok", time.Second)
	assert.Contains(t, lines, "readyok")
}

func TestDriverPositionWithMovesReplaysGame(t *testing.T) {
	in, out := newTestDriver(t)
	defer close(in)

	collectUntil(t, out, "uciok", time.Second)

	in <- "position startpos moves e2e4 e7e5"
	in <- "go depth 1"

	lines := collectUntil(t, out, "bestmove", 5*time.Second)
	assert.NotEmpty(t, lines)
}

func TestDriverUnknownCommandIsIgnored(t *testing.T) {
	in, out := newTestDriver(t)
	defer close(in)

	collectUntil(t, out, "uciok", time.Second)

	in <- "notacommand with args"
	in <- "isready"
	lines := collectUntil(t, out, "readyok", time.Second)
	assert.Contains(t, lines, "readyok")
}

func TestDriverQuitClosesOutput(t *testing.T) {
	in, out := newTestDriver(t)

	collectUntil(t, out, "uciok", time.Second)
	in <- "quit"

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("output channel never closed after quit")
		}
	}
}
