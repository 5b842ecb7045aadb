// bench runs the core search against a fixed suite of positions and reports nodes searched,
// elapsed time and nodes-per-second. It exists purely as a driver of pkg/search; it contains no
// search logic of its own. See: https://www.chessprogramming.org/Bench.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/seekerror/logw"
)

var (
	depth  = flag.Int("depth", 6, "Search depth per position")
	hashMB = flag.Uint("hash", 16, "Transposition table size in MiB")
)

// suite is a fixed set of positions: the initial position, two openings, a back-rank mate in
// one, a king-and-rook endgame and the well-known "Kiwipete" bench position.
var suite = []string{
	board.Initial,
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
	"rnbqkb1r/pp1p1ppp/2p2n2/4p3/4P3/2N2N2/PPPP1PPP/R1BQKB1R w KQkq - 0 4",
	"6k1/5ppp/8/8/8/8/8/R6K w - - 0 1",
	"8/8/8/8/8/2k5/8/K1R5 w - - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
}

func main() {
	flag.Parse()
	ctx := context.Background()

	zt := board.NewZobristTable(0)

	var totalNodes uint64
	start := time.Now()

	for _, rec := range suite {
		pos, _, _, _, err := board.Decode(zt, rec)
		if err != nil {
			logw.Exitf(ctx, "Invalid fen %q: %v", rec, err)
		}

		tt := search.NewTranspositionTableMiB(*hashMB)
		hist := search.NewButterflyHistory()
		deadline := search.NewDepthDeadline(*depth)

		result, pv, nodes := search.Search(pos, nil, deadline, tt, search.Config{}, hist, func(search.Iteration) {})

		totalNodes += nodes.Searched()
		fmt.Printf("bench,%v,%v,%v,%v\n", rec, result, nodes.Searched(), board.FormatMoves(pv))
	}

	elapsed := time.Since(start)
	nps := uint64(0)
	if elapsed > 0 {
		nps = totalNodes * uint64(time.Second) / uint64(elapsed)
	}
	fmt.Printf("%v nodes %v elapsed %v nps\n", totalNodes, elapsed, nps)
}
