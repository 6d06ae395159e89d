package engine

import (
	"testing"

	"github.com/maksverver/dvonn-engine/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPVEmptyWhenTTHasNoEntry(t *testing.T) {
	var b board.Board
	b.Clear()
	tt := NewTranspositionTable(4)
	pv := ExtractPV(&b, tt, 5)
	assert.Empty(t, pv)
}

func TestExtractPVFollowsKillerChainAndRestoresBoard(t *testing.T) {
	var b board.Board
	b.Clear()
	before := b
	tt := NewTranspositionTable(8)

	m := board.Move{Kind: board.KindPlace, To: 0}
	tt.Store(b.Hash, b.Moves, 1, 0, 0, TTMoveFrom(m))

	pv := ExtractPV(&b, tt, 5)
	require.Len(t, pv, 1)
	assert.Equal(t, m, pv[0])
	assert.Equal(t, before, b, "ExtractPV must restore the board exactly")
}

func TestExtractPVStopsOnInvalidMove(t *testing.T) {
	var b board.Board
	b.Clear()
	b.Do(board.Move{Kind: board.KindPlace, To: 0}) // cell 0 now occupied
	tt := NewTranspositionTable(8)
	tt.Store(b.Hash, b.Moves, 1, 0, 0, TTMoveFrom(board.Move{Kind: board.KindPlace, To: 0}))

	pv := ExtractPV(&b, tt, 5)
	assert.Empty(t, pv, "a killer move no longer legal in this position must not be followed")
}
