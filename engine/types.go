// Package engine implements the search side of the Dvonn player: a
// transposition table, a phase-gated evaluator, move ordering, and a
// negamax alpha-beta searcher with PVS, MTD(f) and iterative deepening.
// It depends on board for rules and move generation and does not import
// notation; protocol and cmd/dvonn-engine depend on it, never the reverse.
package engine

import "github.com/maksverver/dvonn-engine/board"

// SearchConfig is the immutable bundle of feature toggles the reference
// implementation kept as ai_use_tt/ai_use_mo/ai_use_killer/ai_use_pvs/
// ai_use_mtdf/ai_use_deepening module globals (design note §9.1). Building
// it once in config and threading it down the call stack, instead of
// mutating package state, makes concurrent self-play (tools/selfplay) and
// table-driven tests safe without a global lock.
type SearchConfig struct {
	UseTT     bool
	MoveOrder MoveOrderMode
	UseKiller bool
	UsePVS    bool
	UseMTDF   bool

	// DeepeningSteps selects which of spec.md §4.7's two overshoot-
	// projection formulas Clock.ProjectsOvershoot applies: 1 for
	// one-step-per-deepening (used·r²), 2 for two-step-per-deepening
	// (used·(even-depth ? 2r : r/2)). Any other value behaves as 1.
	DeepeningSteps int

	TTBits int // log2(TT entry count); 0 means "use DefaultTTBits"
	Weights EvalWeights
	Fields  FieldWeights
}

// MoveOrderMode selects which of ordering.go's two strategies (if any) is
// applied to the child list before descent, matching spec.md §6's
// `--mo=<0|1|2>` three-way switch.
type MoveOrderMode int

const (
	MoveOrderOff MoveOrderMode = iota
	MoveOrderHeuristic
	MoveOrderEvaluated
)

// DefaultTTBits sizes the transposition table at 2^21 entries (~40 MiB at
// 20 bytes/entry), matching original_source/TT.c's default entry count.
const DefaultTTBits = 21

// DefaultSearchConfig mirrors the reference implementation's defaults: every
// optimization on, full-size table.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		UseTT:          true,
		MoveOrder:      MoveOrderEvaluated,
		UseKiller:      true,
		UsePVS:         true,
		UseMTDF:        false,
		DeepeningSteps: 1,
		TTBits:         DefaultTTBits,
		Weights:        DefaultEvalWeights,
		Fields:         DefaultFieldWeights,
	}
}

// EvalWeights weights the stacking-phase evaluator's four linear terms plus
// a present-but-neutral Score term (original_source/Eval.h; see
// SPEC_FULL.md §3).
type EvalWeights struct {
	Stacks  int
	Moves   int
	ToLife  int
	ToEnemy int
	Score   int
}

// DefaultEvalWeights matches original_source/Eval.c's tuned constants.
var DefaultEvalWeights = EvalWeights{
	Stacks:  100,
	Moves:   25,
	ToLife:  20,
	ToEnemy: 20,
	Score:   0,
}

// FieldWeights parameterizes the optional per-cell placement-phase bonus
// table (spec.md §4.6 "--wfields"): bonus for an occupied cell is
// base + (bonus>>shift)/(1 + distance to the nearest Dvonn); see fieldValue.
type FieldWeights struct {
	Base  int
	Bonus int
	Shift uint
}

// DefaultFieldWeights disables the per-cell table (Bonus=0 is a no-op).
var DefaultFieldWeights = FieldWeights{Base: 0, Bonus: 0, Shift: 0}

// AiLimit bounds a single search call: a fixed depth, a wall-clock budget,
// or both (spec.md §3).
type AiLimit struct {
	MaxDepth int           // 0 means unbounded
	MaxNodes int64         // 0 means unbounded
	Deadline int64         // unix nanoseconds; 0 means unbounded
}

// AiResult reports what SearchWithTime found (spec.md §3).
type AiResult struct {
	Move     board.Move
	Score    int
	Depth    int
	Nodes    int64
	PV       []board.Move
	Aborted  bool
}
