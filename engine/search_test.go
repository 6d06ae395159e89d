package engine

import (
	"testing"

	"github.com/maksverver/dvonn-engine/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildStateSingleReplyDoesNotDecrementDepth(t *testing.T) {
	pass, depth := childState(board.Move{Kind: board.KindStack}, 5, 1)
	assert.Equal(t, 5, depth)
	assert.Equal(t, 0, pass)
}

func TestChildStateMultiReplyDecrementsDepth(t *testing.T) {
	pass, depth := childState(board.Move{Kind: board.KindStack}, 5, 3)
	assert.Equal(t, 4, depth)
	assert.Equal(t, 0, pass)
}

func TestChildStatePassIncrementsPassCounter(t *testing.T) {
	pass, _ := childState(board.Move{Kind: board.KindPass}, 5, 1)
	assert.Equal(t, 1, pass)
}

func TestSelectPlacementReturnsLegalMove(t *testing.T) {
	var b board.Board
	b.Clear()
	s := NewSession(DefaultSearchConfig(), 7)
	m, ok := s.SelectPlacement(&b)
	require.True(t, ok)
	assert.True(t, b.ValidMove(m))
}

func TestSelectPlacementPrefersCenterCellOnEmptyBoard(t *testing.T) {
	var b board.Board
	b.Clear()
	s := NewSession(DefaultSearchConfig(), 3)
	m, ok := s.SelectPlacement(&b)
	require.True(t, ok)
	center := board.CellIndex(board.W/2, board.H/2)
	assert.EqualValues(t, center, m.To)
}

func TestSearchWithTimePlacementPhaseReturnsLegalMove(t *testing.T) {
	var b board.Board
	b.Clear()
	s := NewSession(DefaultSearchConfig(), 1)
	result := s.SearchWithTime(&b, AiLimit{MaxDepth: 3})
	assert.True(t, b.ValidMove(result.Move))
}

func TestSearchWithTimeReturnsOnlyLegalStackingMove(t *testing.T) {
	var b board.Board
	b.Clear()
	b.Moves = board.N
	b.Fields[24] = board.Field{Player: board.White, Pieces: 1}
	keep := board.Neighbours(24)[0]
	for _, nb := range board.Neighbours(24) {
		if nb != keep {
			b.Fields[nb].Removed = 1
		}
	}
	b.Fields[keep] = board.Field{Player: board.NoPlayer, Dvonns: 1, Pieces: 1}
	b.RebuildDerived()
	require.Equal(t, board.Stacking, b.Phase())

	legal := b.GenerateMoves(nil)
	require.Len(t, legal, 1)

	s := NewSession(DefaultSearchConfig(), 1)
	result := s.SearchWithTime(&b, AiLimit{MaxDepth: 2})
	assert.Equal(t, legal[0], result.Move)
}

func TestSearchWithTimeReportsNodesSearched(t *testing.T) {
	var b board.Board
	b.Clear()
	b.Moves = board.N
	b.Fields[24] = board.Field{Player: board.White, Pieces: 1}
	keep := board.Neighbours(24)[0]
	for _, nb := range board.Neighbours(24) {
		if nb != keep {
			b.Fields[nb].Removed = 1
		}
	}
	b.Fields[keep] = board.Field{Player: board.NoPlayer, Dvonns: 1, Pieces: 1}
	b.RebuildDerived()

	s := NewSession(DefaultSearchConfig(), 1)
	result := s.SearchWithTime(&b, AiLimit{MaxDepth: 2})
	assert.Greater(t, result.Nodes, int64(0))
}

func TestTerminalScoreFavorsSideToMoveWithMorePieces(t *testing.T) {
	var b board.Board
	b.Clear()
	b.Moves = board.N
	b.Fields[0] = board.Field{Player: board.White, Pieces: 5}
	b.Fields[1] = board.Field{Player: board.Black, Pieces: 2}
	b.RebuildDerived()

	s := NewSession(DefaultSearchConfig(), 1)
	assert.Equal(t, bigScore*3, s.terminalScore(&b))
}
