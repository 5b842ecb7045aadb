package search

import (
	"testing"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/stretchr/testify/assert"
)

func mv(from, to board.Square) board.Move {
	return board.Move{From: from, To: to}
}

func TestPVBufferClearAndLine(t *testing.T) {
	var pv pvBuffer

	assert.Nil(t, pv.line(0))

	pv.update(2, mv(board.E2, board.E4))
	pv.update(1, mv(board.G1, board.F3))
	pv.update(0, mv(board.E7, board.E5))

	line := pv.line(0)
	assert.Equal(t, []board.Move{mv(board.E7, board.E5), mv(board.G1, board.F3), mv(board.E2, board.E4)}, line)

	pv.clear(0)
	assert.Nil(t, pv.line(0))
	// deeper plies are untouched by a shallower clear
	assert.NotNil(t, pv.line(1))
}

func TestPVBufferUpdateReplacesHead(t *testing.T) {
	var pv pvBuffer

	pv.update(0, mv(board.E2, board.E4))
	assert.Equal(t, []board.Move{mv(board.E2, board.E4)}, pv.line(0))

	pv.clear(0)
	pv.update(0, mv(board.D2, board.D4))
	assert.Equal(t, []board.Move{mv(board.D2, board.D4)}, pv.line(0))
}
