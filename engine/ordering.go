package engine

import (
	"math/rand"

	"github.com/maksverver/dvonn-engine/board"
)

// ShuffleMoves randomizes move order in place (original_source/MO.c's
// shuffle_moves, a standard Fisher-Yates shuffle). Used at the search root
// so that repeated games between otherwise-identical engines do not
// always pick the same move among several of equal value.
func ShuffleMoves(rng *rand.Rand, moves []board.Move) {
	for n := len(moves); n > 1; n-- {
		m := rng.Intn(n)
		moves[m], moves[n-1] = moves[n-1], moves[m]
	}
}

// MoveToFront promotes killer to the first slot if present, preserving the
// relative order of everything else (original_source/MO.c's
// move_to_front). A no-op if killer is not in moves.
func MoveToFront(moves []board.Move, killer board.Move) {
	if killer.Kind == board.KindNull {
		return
	}
	for i, m := range moves {
		if m == killer {
			copy(moves[1:i+1], moves[:i])
			moves[0] = killer
			return
		}
	}
}

// HeuristicOrder partitions moves into three bands without evaluating any
// of them: onto-the-opponent's-stack first, onto-a-bare-Dvonn second,
// onto-your-own-stack last. original_source/MO.c's order_moves always
// fully evaluates every move (see EvaluatedOrder) — it has no cheap
// heuristic variant — so this ordering has no original_source counterpart;
// it exists as a cheaper alternative for plies deep enough that evaluating
// every child move's resulting position is not worth its cost. Stable
// within each band.
func HeuristicOrder(b *board.Board, moves []board.Move) {
	side := b.NextPlayer()
	rank := func(m board.Move) int {
		if m.Kind != board.KindStack {
			return 1 // placements have no ordering signal
		}
		g := &b.Fields[m.To]
		switch {
		case g.Player != board.NoPlayer && g.Player != side:
			return 0 // onto opponent: good
		case g.Dvonns > 0 && g.Player == board.NoPlayer:
			return 1 // onto a bare Dvonn: medium
		default:
			return 2 // onto own stack: bad
		}
	}
	stableBucketSort(moves, rank)
}

// stableBucketSort performs a stable 3-way partition by rank without
// reaching for sort.SliceStable's comparator overhead, since rank only
// ever returns 0, 1 or 2.
func stableBucketSort(moves []board.Move, rank func(board.Move) int) {
	var buckets [3][]board.Move
	for _, m := range moves {
		r := rank(m)
		buckets[r] = append(buckets[r], m)
	}
	i := 0
	for _, bucket := range buckets {
		i += copy(moves[i:], bucket)
	}
}

// EvaluatedOrder plays out every move, evaluates the resulting position,
// and sorts ascending by that value (original_source/MO.c's order_moves:
// values are relative to the opponent after the move, so lower is better
// for the side to move). This is the reference engine's actual move
// ordering, run at every node regardless of depth; it costs M extra
// evaluations per node.
func EvaluatedOrder(b *board.Board, moves []board.Move, weights EvalWeights, fields FieldWeights) {
	values := make([]int, len(moves))
	for i, m := range moves {
		u := b.Do(m)
		v, _ := Evaluate(b, weights, fields)
		values[i] = v
		b.Undo(u)
	}
	// insertion sort, stable, ascending by values
	for i := 1; i < len(moves); i++ {
		v, m := values[i], moves[i]
		j := i
		for j > 0 && values[j-1] > v {
			values[j] = values[j-1]
			moves[j] = moves[j-1]
			j--
		}
		values[j] = v
		moves[j] = m
	}
}
