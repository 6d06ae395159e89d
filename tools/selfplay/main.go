// Command selfplay runs two dvonn-engine binaries against each other over
// the Start/move/Quit line protocol and reports a win/draw/loss record
// with an Elo-difference estimate, adapted from blunext-chess/tools/
// tournament's UCI-vs-UCI runner.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds one selfplay match's configuration.
type Config struct {
	Engine1Path     string
	Engine2Path     string
	EngineArgs      []string
	Games           int
	MaxGameDuration time.Duration
	UseSPRT         bool
	Verbose         bool
}

func main() {
	engine1 := flag.String("engine1", "", "path to first engine binary (required)")
	engine2 := flag.String("engine2", "", "path to second engine binary (required)")
	games := flag.Int("games", 100, "number of games to play")
	perMoveSecs := flag.Float64("movetime", 1.0, "per-move search budget in seconds, passed to each engine as --time")
	maxGameSecs := flag.Float64("maxgame", 120.0, "wall-clock ceiling per game before it is scored a draw")
	useSPRT := flag.Bool("sprt", false, "use SPRT for early stopping")
	verbose := flag.Bool("v", false, "verbose per-move output")
	flag.Parse()

	if *engine1 == "" || *engine2 == "" {
		fmt.Println("Usage: selfplay -engine1 <path> -engine2 <path> [options]")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := Config{
		Engine1Path:     *engine1,
		Engine2Path:     *engine2,
		EngineArgs:      []string{fmt.Sprintf("--time=%g", *perMoveSecs)},
		Games:           *games,
		MaxGameDuration: time.Duration(*maxGameSecs * float64(time.Second)),
		UseSPRT:         *useSPRT,
		Verbose:         *verbose,
	}

	fmt.Printf("Selfplay: %s vs %s\n", cfg.Engine1Path, cfg.Engine2Path)
	fmt.Printf("Per-move budget: %.2fs, games: %d\n", *perMoveSecs, cfg.Games)
	if cfg.UseSPRT {
		fmt.Println("SPRT: enabled [-5, 0]")
	}
	fmt.Println(strings.Repeat("-", 50))

	result, err := RunMatch(cfg)
	if err != nil {
		fmt.Printf("match error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("RESULTS")
	fmt.Println(strings.Repeat("=", 50))
	printResults(result)
}

func printResults(r TournamentResult) {
	total := r.Wins + r.Draws + r.Losses
	score := float64(r.Wins) + 0.5*float64(r.Draws)
	pct := 0.0
	if total > 0 {
		pct = 100.0 * score / float64(total)
	}

	fmt.Printf("Results: +%d =%d -%d (%.1f%%)\n", r.Wins, r.Draws, r.Losses, pct)
	fmt.Printf("Elo difference: %+.0f +/-%.0f (95%% CI)\n", r.EloDiff, r.EloError)
	fmt.Printf("LOS: %.1f%%\n", r.LOS*100)

	if r.SPRTResult != "" {
		fmt.Printf("\nSPRT [-5, 0]: LLR = %.2f\n", r.LLR)
		fmt.Printf("Conclusion: %s\n", r.SPRTResult)
	}
}
