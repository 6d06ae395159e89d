package engine

import (
	"math/rand"
	"testing"

	"github.com/maksverver/dvonn-engine/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleMovesPermutesWithoutLoss(t *testing.T) {
	moves := []board.Move{
		{Kind: board.KindPlace, To: 0},
		{Kind: board.KindPlace, To: 1},
		{Kind: board.KindPlace, To: 2},
		{Kind: board.KindPlace, To: 3},
	}
	before := append([]board.Move(nil), moves...)
	ShuffleMoves(rand.New(rand.NewSource(42)), moves)
	assert.ElementsMatch(t, before, moves)
}

func TestMoveToFrontPromotesKiller(t *testing.T) {
	moves := []board.Move{
		{Kind: board.KindPlace, To: 0},
		{Kind: board.KindPlace, To: 1},
		{Kind: board.KindPlace, To: 2},
	}
	MoveToFront(moves, board.Move{Kind: board.KindPlace, To: 2})
	assert.Equal(t, board.Move{Kind: board.KindPlace, To: 2}, moves[0])
	assert.ElementsMatch(t, []board.Move{
		{Kind: board.KindPlace, To: 0},
		{Kind: board.KindPlace, To: 1},
		{Kind: board.KindPlace, To: 2},
	}, moves)
}

func TestMoveToFrontNoOpWhenKillerAbsent(t *testing.T) {
	moves := []board.Move{
		{Kind: board.KindPlace, To: 0},
		{Kind: board.KindPlace, To: 1},
	}
	before := append([]board.Move(nil), moves...)
	MoveToFront(moves, board.Move{Kind: board.KindPlace, To: 9})
	assert.Equal(t, before, moves)
}

func TestMoveToFrontIgnoresNullKiller(t *testing.T) {
	moves := []board.Move{{Kind: board.KindPlace, To: 0}, {Kind: board.KindPlace, To: 1}}
	before := append([]board.Move(nil), moves...)
	MoveToFront(moves, board.Move{})
	assert.Equal(t, before, moves)
}

func TestHeuristicOrderRanksOntoOpponentBeforeOwnStack(t *testing.T) {
	var b board.Board
	b.Clear()
	b.Moves = board.N // stacking phase, White to move
	b.Fields[24] = board.Field{Player: board.White, Pieces: 1}
	b.Fields[23] = board.Field{Player: board.Black, Pieces: 1}       // onto opponent: good
	b.Fields[25] = board.Field{Player: board.NoPlayer, Pieces: 1, Dvonns: 1} // onto bare Dvonn: medium
	b.Fields[34] = board.Field{Player: board.White, Pieces: 1}       // onto own stack: bad
	b.RebuildDerived()
	require.Equal(t, board.White, b.NextPlayer())

	moves := b.GenerateStacks(board.White, nil)
	require.NotEmpty(t, moves)
	HeuristicOrder(&b, moves)

	rankOf := func(to int8) int {
		for i, m := range moves {
			if m.To == to {
				return i
			}
		}
		return -1
	}
	assert.Less(t, rankOf(23), rankOf(34), "onto-opponent move should rank before onto-own-stack move")
	assert.Less(t, rankOf(25), rankOf(34), "onto-Dvonn move should rank before onto-own-stack move")
}

func TestEvaluatedOrderSortsAscendingByResultingValue(t *testing.T) {
	var b board.Board
	b.Clear()
	for i := 0; i < board.N; i++ {
		b.Do(board.Move{Kind: board.KindPlace, To: int8(i)})
	}
	require.Equal(t, board.Stacking, b.Phase())

	moves := b.GenerateMoves(nil)
	require.NotEmpty(t, moves)
	EvaluatedOrder(&b, moves, DefaultEvalWeights, DefaultFieldWeights)

	values := make([]int, len(moves))
	for i, m := range moves {
		u := b.Do(m)
		v, _ := Evaluate(&b, DefaultEvalWeights, DefaultFieldWeights)
		values[i] = v
		b.Undo(u)
	}
	for i := 1; i < len(values); i++ {
		assert.LessOrEqual(t, values[i-1], values[i])
	}
}
