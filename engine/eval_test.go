package engine

import (
	"testing"

	"github.com/maksverver/dvonn-engine/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateReturnsZeroDuringDvonnPlacement(t *testing.T) {
	var b board.Board
	b.Clear()
	v, exact := Evaluate(&b, DefaultEvalWeights, DefaultFieldWeights)
	assert.Zero(t, v)
	assert.False(t, exact)
}

func TestEvaluatePlacingRewardsDistanceOneFromDvonn(t *testing.T) {
	center := board.CellIndex(board.W/2, board.H/2)
	near := int(board.Neighbours(center)[0])
	far := board.CellIndex(board.W-1, board.H-1) // a footprint corner, far from every Dvonn

	build := func(secondPlacement int) *board.Board {
		var b board.Board
		b.Clear()
		b.Do(board.Move{Kind: board.KindPlace, To: int8(center)}) // Dvonn 1
		b.Do(board.Move{Kind: board.KindPlace, To: 1})            // Dvonn 2
		b.Do(board.Move{Kind: board.KindPlace, To: 2})            // Dvonn 3
		b.Do(board.Move{Kind: board.KindPlace, To: int8(secondPlacement)})
		return &b
	}

	bNear := build(near)
	bFar := build(far)
	require.Equal(t, bNear.NextPlayer(), bFar.NextPlayer())

	// EvaluatePlacing scores from the side to move, the placer's opponent,
	// so the placer's own score is its negation. The side that just placed
	// adjacent to a Dvonn should score no worse than placing farther away,
	// all else equal (the distance-one bonus and lower total-distance term
	// both favor the near placement).
	assert.GreaterOrEqual(t, -EvaluatePlacing(bNear, DefaultFieldWeights), -EvaluatePlacing(bFar, DefaultFieldWeights))
}

func TestEvaluatePlacingFieldBonusRewardsProximityToDvonn(t *testing.T) {
	center := board.CellIndex(board.W/2, board.H/2)
	near := int(board.Neighbours(center)[0])
	far := board.CellIndex(board.W-1, board.H-1) // a footprint corner, far from every Dvonn

	build := func(secondPlacement int) *board.Board {
		var b board.Board
		b.Clear()
		b.Do(board.Move{Kind: board.KindPlace, To: int8(center)})
		b.Do(board.Move{Kind: board.KindPlace, To: 1})
		b.Do(board.Move{Kind: board.KindPlace, To: 2})
		b.Do(board.Move{Kind: board.KindPlace, To: int8(secondPlacement)})
		return &b
	}

	fields := FieldWeights{Base: 0, Bonus: 100, Shift: 0}
	bNear, bFar := build(near), build(far)
	// Negated: EvaluatePlacing scores from the side to move, the placer's opponent.
	assert.Greater(t, -EvaluatePlacing(bNear, fields), -EvaluatePlacing(bFar, fields))
}

func TestEvaluateStackingWeighsConfiguredTerms(t *testing.T) {
	b := buildSimpleStackingBoard()
	v, exact := Evaluate(&b, DefaultEvalWeights, DefaultFieldWeights)
	require.False(t, exact)

	zero, exact2 := EvaluateStacking(&b, EvalWeights{})
	require.False(t, exact2)
	assert.Zero(t, zero, "every term zero-weighted should score exactly zero")
	assert.NotEqual(t, zero, v, "default weights should produce a nonzero score for this position")
}

func TestEvaluateStackingDetectsGameOver(t *testing.T) {
	var b board.Board
	b.Clear()
	b.Moves = board.N
	b.Fields[24] = board.Field{Player: board.White, Pieces: 3, Dvonns: 1}
	b.Fields[0] = board.Field{Player: board.Black, Pieces: 2}
	for n := range b.Fields {
		if n != 24 && n != 0 {
			b.Fields[n].Removed = int32(board.N)
		}
	}
	b.RebuildDerived()

	v, exact := EvaluateStacking(&b, DefaultEvalWeights)
	require.True(t, exact)
	// White to move at move count N; White holds 3 pieces, Black holds 2.
	assert.Equal(t, bigScore*1, v)
}

// buildSimpleStackingBoard constructs a small stacking-phase position with
// one mobile White stack (mobile because it borders the removed cell 35)
// neighbouring a Black stack, an unclaimed Dvonn, and a second White
// stack, exercising every term of EvaluateStacking.
func buildSimpleStackingBoard() board.Board {
	var b board.Board
	b.Clear()
	b.Moves = board.N
	b.Fields[24] = board.Field{Player: board.White, Pieces: 1}
	b.Fields[23] = board.Field{Player: board.Black, Pieces: 1}
	b.Fields[25] = board.Field{Player: board.NoPlayer, Pieces: 1, Dvonns: 1}
	b.Fields[34] = board.Field{Player: board.White, Pieces: 1}
	b.Fields[35].Removed = 1
	b.RebuildDerived()
	return b
}
