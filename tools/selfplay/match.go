package main

import (
	"fmt"
	"time"

	"github.com/maksverver/dvonn-engine/board"
	"github.com/maksverver/dvonn-engine/notation"
)

// GameResult is the outcome of a single game, from engine1's perspective.
type GameResult int

const (
	ResultEngine1Wins GameResult = iota
	ResultEngine2Wins
	ResultDraw
	ResultError
)

// TournamentResult holds cumulative results across a Config.Games match,
// the same shape as blunext-chess/tools/tournament/match.go's
// TournamentResult.
type TournamentResult struct {
	Wins       int // engine1 wins
	Draws      int
	Losses     int // engine1 losses
	EloDiff    float64
	EloError   float64
	LOS        float64
	LLR        float64
	SPRTResult string
}

// RunMatch plays cfg.Games games, alternating which engine opens as
// White, and accumulates a TournamentResult — the arbiter loop from
// tools/tournament/match.go's RunTournament, rewired to this game's
// pass-counter termination rule instead of chess checkmate/stalemate/
// repetition detection.
func RunMatch(cfg Config) (TournamentResult, error) {
	result := TournamentResult{}

	for gameNum := 1; gameNum <= cfg.Games; gameNum++ {
		e1White := gameNum%2 == 1

		outcome, err := playGame(cfg, e1White)
		if err != nil {
			fmt.Printf("game %d error: %v\n", gameNum, err)
			continue
		}

		switch outcome {
		case ResultEngine1Wins:
			result.Wins++
		case ResultEngine2Wins:
			result.Losses++
		case ResultDraw:
			result.Draws++
		}

		total := result.Wins + result.Draws + result.Losses
		score := float64(result.Wins) + 0.5*float64(result.Draws)
		pct := 100.0 * score / float64(total)
		fmt.Printf("game %d/%d: +%d =%d -%d (%.1f%%)\n",
			gameNum, cfg.Games, result.Wins, result.Draws, result.Losses, pct)

		if cfg.UseSPRT && total >= 10 {
			llr, conclusion := SPRT(result.Wins, result.Draws, result.Losses, -5, 0)
			result.LLR = llr
			if conclusion != "" {
				result.SPRTResult = conclusion
				fmt.Printf("SPRT stopped: %s\n", conclusion)
				break
			}
		}
	}

	result.EloDiff, result.EloError = EloDiff(result.Wins, result.Draws, result.Losses)
	result.LOS = LOS(result.Wins, result.Draws, result.Losses)
	return result, nil
}

// playGame drives one game between two dvonn-engine subprocesses. It
// keeps its own board.Board as the arbiter's ground truth — the same
// role a tournament server plays for the real engine — since the line
// protocol itself carries no explicit "game over" message; termination
// is two consecutive passes, exactly as the search side detects it.
func playGame(cfg Config, e1White bool) (GameResult, error) {
	e1, err := NewClient(cfg.Engine1Path, cfg.EngineArgs)
	if err != nil {
		return ResultError, fmt.Errorf("start engine1: %w", err)
	}
	e2, err := NewClient(cfg.Engine2Path, cfg.EngineArgs)
	if err != nil {
		return ResultError, fmt.Errorf("start engine2: %w", err)
	}

	var whiteClient, blackClient *Client
	if e1White {
		whiteClient, blackClient = e1, e2
	} else {
		whiteClient, blackClient = e2, e1
	}

	var b board.Board
	b.Clear()

	if err := whiteClient.Send("Start"); err != nil {
		return ResultError, fmt.Errorf("telling white Start: %w", err)
	}

	current, other := whiteClient, blackClient
	passRun := 0
	deadline := time.Now().Add(cfg.MaxGameDuration)

	for {
		if time.Now().After(deadline) {
			whiteClient.Quit("draw: exceeded max game duration")
			blackClient.Quit("draw: exceeded max game duration")
			return ResultDraw, nil
		}

		moveStr, err := current.ReadMove()
		if err != nil {
			whiteClient.Quit("error")
			blackClient.Quit("error")
			return ResultError, err
		}

		m, err := notation.ParseMove(moveStr)
		if err != nil {
			whiteClient.Quit("error: malformed move")
			blackClient.Quit("error: malformed move")
			return ResultError, fmt.Errorf("malformed move %q from %s: %w", moveStr, current.name, err)
		}
		if !b.ValidMove(m) {
			whiteClient.Quit("error: illegal move")
			blackClient.Quit("error: illegal move")
			return ResultError, fmt.Errorf("illegal move %q from %s", moveStr, current.name)
		}
		b.Do(m)

		if cfg.Verbose {
			who := "B"
			if current == whiteClient {
				who = "W"
			}
			fmt.Printf("  %s: %s\n", who, moveStr)
		}

		if m.Kind == board.KindPass {
			passRun++
		} else {
			passRun = 0
		}
		if passRun >= 2 {
			break
		}

		if err := other.Send(moveStr); err != nil {
			return ResultError, fmt.Errorf("forwarding move to %s: %w", other.name, err)
		}
		current, other = other, current
	}

	whiteScore := b.ScoreFor(board.White)
	blackScore := b.ScoreFor(board.Black)

	var summary string
	switch {
	case whiteScore > blackScore:
		summary = fmt.Sprintf("result: white wins %d-%d", whiteScore, blackScore)
	case blackScore > whiteScore:
		summary = fmt.Sprintf("result: black wins %d-%d", blackScore, whiteScore)
	default:
		summary = fmt.Sprintf("result: draw %d-%d", whiteScore, blackScore)
	}
	whiteClient.Quit(summary)
	blackClient.Quit(summary)

	switch {
	case whiteScore == blackScore:
		return ResultDraw, nil
	case (whiteScore > blackScore) == e1White:
		return ResultEngine1Wins, nil
	default:
		return ResultEngine2Wins, nil
	}
}
