// Package config parses the process's command-line surface (spec.md §6)
// into an immutable EngineConfig, the way original_source/player.c's
// parse_args populates its module-global arg_* variables and
// ai_use_tt/ai_use_mo before main() seeds the RNG and dispatches to
// run_game or solve_state.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/maksverver/dvonn-engine/engine"
)

// Color is the --color bitmask: which side(s) the engine is willing to
// play, matching spec.md §6 (1=white, 2=black, 3=both).
type Color int

const (
	ColorNone  Color = 0
	ColorWhite Color = 1
	ColorBlack Color = 2
	ColorBoth  Color = 3
)

// EngineConfig is the fully-resolved result of parsing os.Args: everything
// downstream of config.Load (protocol.Driver, cmd/dvonn-engine) reads from
// this struct rather than touching flags again.
type EngineConfig struct {
	Search engine.SearchConfig

	Seed    int64
	State   string // raw --state=<descr>; empty means "start from an empty board"
	Color   Color
	Analyze bool

	Limit engine.AiLimit
}

// Load parses args (normally os.Args[1:]) into an EngineConfig. It prints
// usage and returns an error wrapping pflag.ErrHelp when --help is given,
// matching player.c's print_usage()+exit(EXIT_SUCCESS) — cmd/dvonn-engine
// treats that specific error as a clean, zero-exit-code request, not a
// failure.
func Load(args []string) (EngineConfig, error) {
	fs := pflag.NewFlagSet("dvonn-engine", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:\n\tdvonn-engine [options]\nOptions:")
		fs.PrintDefaults()
	}

	seed := fs.Int64("seed", 0, "initialize RNG with given seed (default: derived from pid and wall time)")
	state := fs.String("state", "", "load initial state from a state string instead of playing from an empty board")
	colorFlag := fs.Int("color", 0, "which side(s) the engine may play: 1=white, 2=black, 3=both (default: inferred from the first input line)")
	analyze := fs.Bool("analyze", false, "evaluate --state once, print the chosen move and PV, and exit without playing")
	depth := fs.Int("depth", 0, "maximum search depth (default: unbounded, governed by --time)")
	evalOnly := fs.Int("eval", 0, "unused placeholder for a fixed-depth static-eval-only probe (reserved)")
	secs := fs.Float64("time", 5.0, "maximum search time per move, in seconds")
	ttBits := fs.Int("tt", engine.DefaultTTBits, "transposition table size is 2^k entries, 10..28; 0 disables the table")
	mo := fs.Int("mo", int(engine.MoveOrderEvaluated), "move ordering: 0=off, 1=heuristic, 2=evaluated")
	killer := fs.Int("killer", 1, "killer-move heuristic: 0=off, 1=on")
	pvs := fs.Int("pvs", 1, "principal variation search: 0=off, 1=on")
	mtdf := fs.Int("mtdf", 0, "MTD(f) null-window narrowing in place of full-window search: 0=off, 1=on")
	deep := fs.Int("deep", 1, "overshoot projection: 1=one-step-per-deepening (used*r^2), 2=two-step-per-deepening (used*(even-depth ? 2r : r/2))")
	weights := fs.String("weights", "", "evaluator weights as stacks:moves:tolife:toenemy (default: the reference tuned constants)")
	wfields := fs.String("wfields", "", "per-cell field-distance bonus as base:bonus:shift (default: disabled)")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return EngineConfig{}, err
		}
		return EngineConfig{}, fmt.Errorf("config: %w", err)
	}

	_ = evalOnly // accepted for CLI-surface parity with player.c; the reference never wired a fixed-eval-depth mode either.

	cfg := engine.DefaultSearchConfig()

	if *ttBits <= 0 {
		cfg.UseTT = false
	} else {
		if *ttBits < 10 || *ttBits > 28 {
			return EngineConfig{}, fmt.Errorf("config: --tt=%d out of range [10,28]", *ttBits)
		}
		cfg.UseTT = true
		cfg.TTBits = *ttBits
	}

	switch engine.MoveOrderMode(*mo) {
	case engine.MoveOrderOff, engine.MoveOrderHeuristic, engine.MoveOrderEvaluated:
		cfg.MoveOrder = engine.MoveOrderMode(*mo)
	default:
		return EngineConfig{}, fmt.Errorf("config: --mo=%d must be 0, 1 or 2", *mo)
	}

	switch *killer {
	case 0:
		cfg.UseKiller = false
	case 1:
		cfg.UseKiller = true
	default:
		return EngineConfig{}, fmt.Errorf("config: --killer=%d must be 0 or 1", *killer)
	}

	switch *pvs {
	case 0:
		cfg.UsePVS = false
	case 1:
		cfg.UsePVS = true
	default:
		return EngineConfig{}, fmt.Errorf("config: --pvs=%d must be 0 or 1", *pvs)
	}

	switch *mtdf {
	case 0:
		cfg.UseMTDF = false
	case 1:
		cfg.UseMTDF = true
	default:
		return EngineConfig{}, fmt.Errorf("config: --mtdf=%d must be 0 or 1", *mtdf)
	}

	switch *deep {
	case 1, 2:
		cfg.DeepeningSteps = *deep
	default:
		return EngineConfig{}, fmt.Errorf("config: --deep=%d must be 1 or 2", *deep)
	}

	if *weights != "" {
		w, err := parseEvalWeights(*weights)
		if err != nil {
			return EngineConfig{}, err
		}
		cfg.Weights = w
	}

	if *wfields != "" {
		f, err := parseFieldWeights(*wfields)
		if err != nil {
			return EngineConfig{}, err
		}
		cfg.Fields = f
	}

	if *colorFlag < 0 || *colorFlag > 3 {
		return EngineConfig{}, fmt.Errorf("config: --color=%d must be 0..3", *colorFlag)
	}

	s := *seed
	if s == 0 {
		s = defaultSeed()
	}

	return EngineConfig{
		Search:  cfg,
		Seed:    s,
		State:   *state,
		Color:   Color(*colorFlag),
		Analyze: *analyze,
		Limit: engine.AiLimit{
			MaxDepth: *depth,
			Deadline: deadlineFrom(*secs),
		},
	}, nil
}

// defaultSeed mirrors player.c's (1337*pid + 17*time(NULL)) % 1000000 when
// no --seed is given, so unseeded runs still vary run to run without
// needing crypto/rand.
func defaultSeed() int64 {
	return (1337*int64(os.Getpid()) + 17*time.Now().Unix()) % 1000000
}

// deadlineFrom converts a --time budget in seconds, measured from the call
// to Load, into the absolute unix-nanosecond deadline engine.AiLimit wants.
// secs <= 0 means unbounded.
func deadlineFrom(secs float64) int64 {
	if secs <= 0 {
		return 0
	}
	return time.Now().Add(time.Duration(secs * float64(time.Second))).UnixNano()
}

func parseEvalWeights(s string) (engine.EvalWeights, error) {
	var stacks, moves, toLife, toEnemy int
	if n, err := fmt.Sscanf(s, "%d:%d:%d:%d", &stacks, &moves, &toLife, &toEnemy); n != 4 || err != nil {
		return engine.EvalWeights{}, fmt.Errorf("config: --weights=%q must be stacks:moves:tolife:toenemy", s)
	}
	return engine.EvalWeights{Stacks: stacks, Moves: moves, ToLife: toLife, ToEnemy: toEnemy}, nil
}

func parseFieldWeights(s string) (engine.FieldWeights, error) {
	var base, bonus int
	var shift uint
	if n, err := fmt.Sscanf(s, "%d:%d:%d", &base, &bonus, &shift); n != 3 || err != nil {
		return engine.FieldWeights{}, fmt.Errorf("config: --wfields=%q must be base:bonus:shift", s)
	}
	return engine.FieldWeights{Base: base, Bonus: bonus, Shift: shift}, nil
}
