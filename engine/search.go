package engine

import (
	"math/rand"
	"time"

	"github.com/maksverver/dvonn-engine/board"
)

// infinity is the root search window's open bound. It is kept well clear of
// bigScore so a clamped terminal score read back from the transposition
// table (engine/tt.go's int16 bounds) can never be mistaken for an open
// window edge.
const infinity = 1 << 30

// Session holds the state a single game's worth of searches share: the
// transposition table and the move-ordering RNG (blunext-chess/engine/
// session.go's per-game-isolated-state idiom), plus the feature toggles
// built once by config. One Session is meant to live for an entire game so
// the table's entries accumulate across moves.
type Session struct {
	cfg    SearchConfig
	tt     *TranspositionTable
	rng    *rand.Rand
	Logger IterationLogger // optional; nil means no iteration telemetry
}

// NewSession builds a Session from cfg, allocating its transposition table
// and seeding its move-ordering RNG. seed makes move-ordering ties (and
// SelectPlacement's reservoir sampling) reproducible for a fixed seed,
// matching original_source/player.c's --seed flag.
func NewSession(cfg SearchConfig, seed int64) *Session {
	bits := cfg.TTBits
	if bits == 0 {
		bits = DefaultTTBits
	}
	return &Session{
		cfg: cfg,
		tt:  NewTranspositionTable(bits),
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Clear empties the transposition table, for starting an unrelated game
// without stale entries from the last one leaking into move selection.
func (s *Session) Clear() {
	s.tt.Clear()
}

// SelectPlacement picks a placement-phase move the way original_source/
// AI.c's ai_select_place does: the center cell scores 1; any other cell
// scores 2 when the cell mirrored through the center holds a piece, plus 4
// more when that pairs a Dvonn opposite a Dvonn or White opposite Black;
// the highest score wins, with uniform random tie-breaking via reservoir
// sampling. The placement phase has no search
// counterpart in the reference player (ai_select_move is only ever called
// once the board has left the placement phase), so SearchWithTime calls
// this instead of negamax whenever b.Phase() == board.Placing.
func (s *Session) SelectPlacement(b *board.Board) (board.Move, bool) {
	places := b.GeneratePlaces(make([]board.Move, 0, board.N))
	if len(places) == 0 {
		return board.Move{}, false
	}

	player := b.NextPlayer()
	centerCol, centerRow := board.W/2, board.H/2

	bestVal := -1
	bestCount := 0
	var chosen board.Move
	for _, m := range places {
		col, row := board.CellCoords(int(m.To))
		val := 0
		if col == centerCol && row == centerRow {
			val++
		} else if mirror := board.CellIndex(board.W-1-col, board.H-1-row); mirror >= 0 {
			f := &b.Fields[mirror]
			if f.Pieces != 0 {
				val += 2
				if b.Moves < board.D {
					if f.Dvonns > 0 {
						val += 4
					}
				} else if f.Player == player.Opponent() {
					val += 4
				}
			}
		}
		if val > bestVal {
			bestVal = val
			bestCount = 0
		}
		if val == bestVal {
			bestCount++
			if s.rng.Intn(bestCount) == 0 {
				chosen = m
			}
		}
	}
	return chosen, true
}

// SearchWithTime finds the best move for the position's side to move,
// under limit. During the placement phase it defers to SelectPlacement;
// during the stacking phase it runs iterative deepening over negamax (or
// MTD(f) atop it, if cfg.UseMTDF), stopping when limit is exhausted or
// clock.ProjectsOvershoot judges another iteration unaffordable
// (spec.md §4.7).
func (s *Session) SearchWithTime(b *board.Board, limit AiLimit) AiResult {
	if b.Phase() == board.Placing {
		m, ok := s.SelectPlacement(b)
		if !ok {
			return AiResult{Move: board.Move{Kind: board.KindPass}}
		}
		return AiResult{Move: m}
	}

	budget := time.Duration(0)
	if limit.Deadline != 0 {
		if d := time.Until(time.Unix(0, limit.Deadline)); d > 0 {
			budget = d
		} else {
			budget = time.Nanosecond
		}
	}
	clock := NewClock(budget, s.cfg.DeepeningSteps)

	maxDepth := limit.MaxDepth
	if maxDepth <= 0 {
		maxDepth = board.N // deep enough that time, not depth, always governs
	}

	var result AiResult
	guess := 0
	for depth := 1; depth <= maxDepth; depth++ {
		start := time.Now()

		var move board.Move
		var value int
		if s.cfg.UseMTDF && depth > 1 {
			move, value = s.mtdf(b, depth, guess, clock)
		} else {
			move, value = s.searchRoot(b, depth, -infinity, infinity, clock)
		}
		elapsed := time.Since(start)

		aborted := clock.Aborted()
		if move.Kind != board.KindNull {
			result = AiResult{
				Move:    move,
				Score:   value,
				Depth:   depth,
				Nodes:   clock.Nodes(),
				PV:      ExtractPV(b, s.tt, maxDepth),
				Aborted: aborted,
			}
			guess = value
		}

		if s.Logger != nil {
			s.Logger.LogIteration(depth, result.Score, clock.Nodes(), result.PV, elapsed, aborted)
		}

		if aborted {
			break
		}
		if limit.MaxNodes > 0 && clock.Nodes() >= limit.MaxNodes {
			break
		}
		if value >= bigScore/2 || value <= -bigScore/2 {
			break // a forced win/loss was proven; deeper search cannot change the move
		}
		if clock.ProjectsOvershoot(depth, elapsed) {
			break
		}
	}
	return result
}

// searchRoot runs one fixed-depth, fixed-window negamax pass and returns
// the best move found alongside its value, mirroring original_source/
// AI.c's ai_select_move/dfs top-level call but split out so iterative
// deepening and mtdf can both drive it with different windows.
func (s *Session) searchRoot(b *board.Board, depth, alpha, beta int, clock *Clock) (board.Move, int) {
	moves := b.GenerateMoves(make([]board.Move, 0, board.M))
	if len(moves) == 0 {
		return board.Move{}, 0
	}

	ShuffleMoves(s.rng, moves)
	s.orderMoves(b, moves)
	if s.cfg.UseKiller {
		if entry, ok := s.tt.Probe(b.Hash); ok {
			MoveToFront(moves, entry.Killer.AsMove())
		}
	}

	best := moves[0]
	value := -infinity
	for i, m := range moves {
		u := b.Do(m)
		childPass, childDepth := childState(m, depth, len(moves))

		var val int
		if s.cfg.UsePVS && i > 0 {
			val = -s.negamax(b, childDepth, childPass, -alpha-1, -alpha, clock)
			if val > alpha && val < beta {
				val = -s.negamax(b, childDepth, childPass, -beta, -val, clock)
			}
		} else {
			val = -s.negamax(b, childDepth, childPass, -beta, -alpha, clock)
		}
		b.Undo(u)

		if val > value {
			value = val
			best = m
		}
		if value > alpha {
			alpha = value
		}

		if clock.Aborted() && i > 0 {
			break
		}
		if alpha >= beta {
			break
		}
	}

	if s.cfg.UseTT {
		s.tt.Store(b.Hash, b.Moves, depth, value, value, TTMoveFrom(best))
	}
	return best, value
}

// mtdf drives searchRoot with a sequence of null-window probes converging
// on depth's minimax value, starting from guess (the previous iteration's
// value, per the standard MTD(f) recipe). spec.md §4.7 lists MTD(f) as an
// optional alternative to the plain aspiration-free search searchRoot
// already performs with an open window.
func (s *Session) mtdf(b *board.Board, depth, guess int, clock *Clock) (board.Move, int) {
	g := guess
	lower, upper := -infinity, infinity
	var best board.Move
	for lower < upper && !clock.Aborted() {
		beta := g
		if g == lower {
			beta++
		}
		var val int
		best, val = s.searchRoot(b, depth, beta-1, beta, clock)
		g = val
		if g < beta {
			upper = g
		} else {
			lower = g
		}
	}
	return best, g
}

// childState computes the pass counter and depth to search a child
// position at, following original_source/AI.c's dfs: it returns 1 for a
// Pass move and 0 for any other move (negamax adds its own pass count to a
// Pass's 1, so two passes in a row end the game), and depth is only decremented when there was more
// than one legal move to choose from (the single-reply extension: a forced
// reply costs nothing to search further).
func childState(m board.Move, depth, nmove int) (pass, childDepth int) {
	if m.Kind == board.KindPass {
		pass = 1
	}
	childDepth = depth
	if nmove > 1 {
		childDepth = depth - 1
	}
	return pass, childDepth
}

// negamax is the recursive search, grounded on original_source/AI.c's dfs:
// fail-soft alpha-beta negamax with a pass-counter terminal check, the
// single-reply depth extension, transposition-table probing and storing
// with proper bound classification, and PVS re-search. depth reaching 0
// falls back to the static evaluator rather than ai_select_move's simpler
// eval_intermediate, since the evaluator itself (eval.go) already ports
// Eval.c's eval_stacking exactly.
func (s *Session) negamax(b *board.Board, depth, pass, alpha, beta int, clock *Clock) int {
	clock.CountNode()

	if pass >= 2 {
		return s.terminalScore(b)
	}
	if clock.Aborted() {
		return 0
	}
	if depth <= 0 {
		value, _ := EvaluateStacking(b, s.cfg.Weights)
		return value
	}

	hash := b.Hash
	alphaOrig := alpha
	var killer TTMove
	if s.cfg.UseTT {
		if entry, ok := s.tt.Probe(hash); ok {
			killer = entry.Killer
			if int(entry.Depth) >= depth {
				lo, hi := int(entry.Lo), int(entry.Hi)
				if lo == hi {
					return lo
				}
				if lo > alpha {
					alpha = lo
				}
				if hi < beta {
					beta = hi
				}
				if alpha >= beta {
					return lo
				}
			}
		}
	}

	moves := b.GenerateMoves(make([]board.Move, 0, board.M))
	s.orderMoves(b, moves)
	if s.cfg.UseKiller {
		MoveToFront(moves, killer.AsMove())
	}

	best := board.Move{}
	value := -infinity
	for i, m := range moves {
		u := b.Do(m)
		childPass, childDepth := childState(m, depth, len(moves))
		if childPass > 0 {
			childPass += pass
		}

		var val int
		if s.cfg.UsePVS && i > 0 {
			val = -s.negamax(b, childDepth, childPass, -alpha-1, -alpha, clock)
			if val > alpha && val < beta {
				val = -s.negamax(b, childDepth, childPass, -beta, -val, clock)
			}
		} else {
			val = -s.negamax(b, childDepth, childPass, -beta, -alpha, clock)
		}
		b.Undo(u)

		if val > value {
			value = val
			best = m
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
		if clock.Aborted() {
			break
		}
	}

	if s.cfg.UseTT && !clock.Aborted() {
		var lo, hi int
		switch {
		case value <= alphaOrig:
			lo, hi = -infinity, value
		case value >= beta:
			lo, hi = value, infinity
		default:
			lo, hi = value, value
		}
		s.tt.Store(hash, b.Moves, depth, lo, hi, TTMoveFrom(best))
	}

	return value
}

// orderMoves applies the configured ordering strategy in place. At the root
// it runs after searchRoot's random shuffle; negamax's interior nodes are
// not shuffled.
func (s *Session) orderMoves(b *board.Board, moves []board.Move) {
	switch s.cfg.MoveOrder {
	case MoveOrderHeuristic:
		HeuristicOrder(b, moves)
	case MoveOrderEvaluated:
		EvaluatedOrder(b, moves, s.cfg.Weights, s.cfg.Fields)
	}
}

// terminalScore is original_source/AI.c's eval_end (100*board_score),
// scaled up to bigScore so it always dominates any heuristic value:
// bigScore times the piece-count difference in favor of the side to move.
func (s *Session) terminalScore(b *board.Board) int {
	player := b.NextPlayer()
	return bigScore * (b.ScoreFor(player) - b.ScoreFor(player.Opponent()))
}
