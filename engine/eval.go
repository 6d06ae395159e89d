package engine

import "github.com/maksverver/dvonn-engine/board"

// dvonnDistances holds, for a position's current Dvonn layout, the minimum
// and total hex distance from every cell to the nearest/all Dvonn piece(s).
// eval_placing (original_source/Eval.c) keeps these as process-wide caches
// rebuilt once per move via eval_update_dvonns; here they are computed
// on demand from the board's own DvonnBits, which is always current.
type dvonnDistances struct {
	min [board.N]int
	tot [board.N]int
}

func computeDvonnDistances(b *board.Board) dvonnDistances {
	var d dvonnDistances
	for n := range d.min {
		d.min[n] = board.N // sentinel "no Dvonn seen yet"
	}
	bits := b.DvonnBits
	for bits != 0 {
		f := trailingZero(bits)
		bits &= bits - 1
		for g := 0; g < board.N; g++ {
			dist := board.Distance(f, g)
			d.tot[g] += dist
			if dist < d.min[g] {
				d.min[g] = dist
			}
		}
	}
	return d
}

func trailingZero(bits uint64) int {
	n := 0
	for bits&1 == 0 {
		bits >>= 1
		n++
	}
	return n
}

// EvaluatePlacing scores a placement-phase position from the perspective
// of the side to move, following original_source/Eval.c's eval_placing
// exactly: pieces one step from a Dvonn get a flat bonus, pieces on the
// footprint edge are tallied, pieces are penalized by their total distance
// to every Dvonn piece, pieces with fewer than two non-friendly neighbours
// are penalized for being boxed in, and a lopsided split of edge cells
// between the two players is penalized. fields is the optional per-cell
// field-value table (spec.md §4.6/§6 "--wfields"); DefaultFieldWeights'
// zero Bonus makes it a no-op.
func EvaluatePlacing(b *board.Board, fields FieldWeights) int {
	player := b.NextPlayer()
	dist := computeDvonnDistances(b)

	var score [2]int
	var edgePieces [2]int

	for n := 0; n < board.N; n++ {
		f := &b.Fields[n]
		if f.Pieces == 0 || f.Player == board.NoPlayer {
			continue
		}
		p := f.Player

		// neighbours not occupied by a piece of the same player (empty
		// cells and opponent stones both count, matching Eval.c exactly).
		neighbours := 0
		for _, nb := range board.Neighbours(n) {
			if b.Fields[nb].Player != f.Player {
				neighbours++
			}
		}
		if dist.min[n] == 1 {
			score[p] += 10
		}
		if board.IsEdgeCell(n) {
			edgePieces[p]++
		}
		score[p] -= dist.tot[n]
		if neighbours < 2 {
			score[p] -= 5 * (2 - neighbours)
		}
		score[p] += fieldValue(dist.min[n], fields)
	}

	if edgePieces[1]-edgePieces[0] > 3 {
		score[0] -= edgePieces[1] - edgePieces[0] - 3
	}
	if edgePieces[0]-edgePieces[1] > 3 {
		score[1] -= edgePieces[0] - edgePieces[1] - 3
	}

	return score[player] - score[1-player]
}

// fieldValue is the optional per-cell placement bonus: base, plus a
// bonus>>shift term that fades with distance to the nearest Dvonn piece, so
// a positive Bonus rewards staying close to Dvonns beyond eval_placing's own
// dist.tot penalty. Zero Bonus (DefaultFieldWeights) makes this always 0.
func fieldValue(distToNearestDvonn int, fields FieldWeights) int {
	if fields.Bonus == 0 {
		return 0
	}
	return fields.Base + (fields.Bonus>>fields.Shift)/(1+distToNearestDvonn)
}

// EvaluateStacking scores a stacking-phase position from the perspective
// of the side to move, following original_source/Eval.c's eval_stacking.
// exact is false unless the game has actually ended (no stack has any
// mobility-relevant move left), in which case the returned score is the
// material difference (the side to move's pieces minus the opponent's)
// times a large constant, bigScore, so it always dominates any heuristic
// score.
func EvaluateStacking(b *board.Board, weights EvalWeights) (value int, exact bool) {
	player := b.NextPlayer()
	gameOver := true
	var stacks, score, moves, toLife, toEnemy int

	for n := 0; n < board.N; n++ {
		f := &b.Fields[n]
		if f.Removed != 0 || f.Player == board.NoPlayer {
			continue
		}
		sign := -1
		if f.Player == player {
			sign = +1
			stacks++
			score += int(f.Pieces)
		} else {
			stacks--
			score -= int(f.Pieces)
		}

		for _, to := range board.Steps(int(f.Pieces), n) {
			g := &b.Fields[to]
			if g.Removed != 0 {
				continue
			}
			if f.Mobile != 0 {
				gameOver = false
				if g.Dvonns > 0 {
					toLife += sign
				}
				if g.Player != board.NoPlayer && g.Player != f.Player {
					toEnemy += sign
				}
			}
			moves += sign
		}
	}

	if gameOver {
		return bigScore * score, true
	}

	return stacks*weights.Stacks + moves*weights.Moves + toLife*weights.ToLife + toEnemy*weights.ToEnemy + score*weights.Score, false
}

// bigScore dominates any heuristic combination of the stacking terms,
// matching original_source/Eval.c's val_big.
const bigScore = 1_000_000

// Evaluate dispatches to the phase-appropriate evaluator. During the
// placement phase the three neutral Dvonn placements (moves 0..D-1) have
// no meaningful heuristic (no player owns a stone yet), so Evaluate
// returns 0 for those, matching the reference's implicit behavior of
// never calling eval_placing before any stone is on the board.
func Evaluate(b *board.Board, weights EvalWeights, fields FieldWeights) (value int, exact bool) {
	switch {
	case b.Moves < board.D:
		return 0, false
	case b.Phase() == board.Placing:
		return EvaluatePlacing(b, fields), false
	default:
		return EvaluateStacking(b, weights)
	}
}
