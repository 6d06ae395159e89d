// Command dvonn-engine is the process entry point: it parses flags, seeds
// the RNG, reports its startup configuration to stderr, and dispatches to
// either a one-shot --state analysis or the Start/move/Quit line protocol
// — the same shape as original_source/player.c's main(): parse_args,
// time_restart, line-buffer stdout/stderr, seed the RNG, then
// solve_state(arg_state) or run_game().
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/maksverver/dvonn-engine/config"
	"github.com/maksverver/dvonn-engine/engine"
	"github.com/maksverver/dvonn-engine/notation"
	"github.com/maksverver/dvonn-engine/protocol"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr *os.File) int {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	log := zerolog.New(stderr).With().Timestamp().Logger()
	log.Info().Int64("seed", cfg.Seed).Msg("rng seeded")
	log.Info().Bool("enabled", cfg.Search.UseTT).Int("bits", cfg.Search.TTBits).Msg("transposition table")
	log.Info().Str("mode", moveOrderName(cfg.Search.MoveOrder)).Msg("move ordering")

	session := engine.NewSession(cfg.Search, cfg.Seed)
	iterLog := engine.NewSearchLogger(log, 64)
	defer iterLog.Close()
	session.Logger = iterLog

	if cfg.State != "" {
		return solveState(session, cfg, stdout, stderr)
	}
	return runGame(session, cfg, stdin, stdout, stderr)
}

// runGame plays a full game over the line protocol, matching player.c's
// run_game dispatch branch.
func runGame(session *engine.Session, cfg config.EngineConfig, stdin *os.File, stdout, stderr *os.File) int {
	driver := protocol.NewDriver(session, cfg.Limit, stdin, stdout, stderr)
	if err := driver.Run(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// solveState loads --state, evaluates it once, and either prints the
// chosen move (playing it out, as player.c's solve_state does) or — under
// --analyze — prints the move and its principal variation without
// mutating anything further, matching spec.md §6's --analyze flag.
func solveState(session *engine.Session, cfg config.EngineConfig, stdout, stderr *os.File) int {
	b, err := notation.ParseState(cfg.State)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := b.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	result := session.SearchWithTime(&b, cfg.Limit)
	moveStr := notation.FormatMove(result.Move)

	if cfg.Analyze {
		fmt.Fprintln(stdout, moveStr)
		for _, m := range result.PV {
			fmt.Fprintln(stderr, notation.FormatMove(m))
		}
		return 0
	}

	fmt.Fprintln(stdout, moveStr)
	if !b.ValidMove(result.Move) {
		fmt.Fprintln(stderr, "internal error: chosen move is not legal")
		return 1
	}
	b.Do(result.Move)
	fmt.Fprintln(stderr, notation.FormatState(&b))
	return 0
}

func moveOrderName(m engine.MoveOrderMode) string {
	switch m {
	case engine.MoveOrderOff:
		return "off"
	case engine.MoveOrderHeuristic:
		return "heuristic"
	case engine.MoveOrderEvaluated:
		return "evaluated"
	default:
		return "unknown"
	}
}
