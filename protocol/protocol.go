// Package protocol drives the line-oriented Start/move/Quit loop of
// spec.md §6, grounded on original_source/player.c's read_line/run_game/
// parse_and_execute_move: a bufio.Scanner-fed request/response loop in the
// shape of blunext-chess/engine/play.go's terminal REPL and
// blunext-chess/uci/uci.go's scanner-loop idiom, but speaking the game's
// own two-token protocol instead of UCI.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/maksverver/dvonn-engine/board"
	"github.com/maksverver/dvonn-engine/engine"
	"github.com/maksverver/dvonn-engine/notation"
)

// errQuit is the sentinel readLine returns when the peer sends "Quit";
// Driver.Run treats it as a clean shutdown, matching player.c's
// exit(EXIT_SUCCESS) inside read_line.
var errQuit = errors.New("protocol: quit")

// Driver owns one board.Board and drives it through the Start/move/Quit
// loop, calling Session.SearchWithTime whenever it is the engine's turn.
type Driver struct {
	Session *engine.Session
	Limit   engine.AiLimit

	in  *bufio.Scanner
	out io.Writer
	err io.Writer
}

// NewDriver wires a Driver to the given session, per-move search budget,
// and line-oriented streams (stdin/stdout/stderr in production).
func NewDriver(session *engine.Session, limit engine.AiLimit, in io.Reader, out, errOut io.Writer) *Driver {
	return &Driver{
		Session: session,
		Limit:   limit,
		in:      bufio.NewScanner(in),
		out:     out,
		err:     errOut,
	}
}

// Run plays one game to completion. It returns nil on a clean "Quit" or
// EOF-after-Quit shutdown, and a non-nil error on any protocol violation
// (unparsable or illegal move, EOF mid-game) — spec.md §7 treats these as
// fatal: the caller is expected to report err and exit nonzero.
func (d *Driver) Run() error {
	var b board.Board
	b.Clear()
	if err := b.Validate(); err != nil {
		return fmt.Errorf("protocol: initial board failed validation: %w", err)
	}

	line, err := d.readLine()
	if errors.Is(err, errQuit) {
		return nil
	}
	if err != nil {
		return err
	}

	myColor := board.Black
	if line == "Start" {
		myColor = board.White
	} else if err := d.parseAndExecute(&b, line); err != nil {
		return err
	}

	for {
		fmt.Fprintln(d.err, notation.FormatState(&b))

		var moveStr string
		if b.NextPlayer() == myColor {
			result := d.Session.SearchWithTime(&b, d.Limit)
			moveStr = notation.FormatMove(result.Move)
			fmt.Fprintf(d.err, " --%s-->\n", moveStr)
			fmt.Fprintln(d.out, moveStr)
		} else {
			line, err := d.readLine()
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				return err
			}
			moveStr = line
			fmt.Fprintf(d.err, "<--%s--\n", moveStr)
		}

		if err := d.parseAndExecute(&b, moveStr); err != nil {
			return err
		}
	}
}

// readLine returns the next whitespace-trimmed, non-blank input line. A
// line reading exactly "Quit" is a non-standard extension (carried over
// from player.c's read_line): it consumes and echoes one further line to
// stderr — some arbiters send a human-readable result summary after
// Quit — then returns errQuit.
func (d *Driver) readLine() (string, error) {
	for {
		if !d.in.Scan() {
			if err := d.in.Err(); err != nil {
				return "", fmt.Errorf("protocol: reading input: %w", err)
			}
			return "", fmt.Errorf("protocol: unexpected end of input")
		}
		line := strings.TrimSpace(d.in.Text())
		if line == "" {
			continue
		}
		if line == "Quit" {
			if d.in.Scan() {
				fmt.Fprintln(d.err, d.in.Text())
			}
			return "", errQuit
		}
		return line, nil
	}
}

// parseAndExecute parses line as a move token and applies it to b,
// re-validating against the current legal-move list even though the
// peer is trusted, matching player.c's parse_and_execute_move.
func (d *Driver) parseAndExecute(b *board.Board, line string) error {
	m, err := notation.ParseMove(line)
	if err != nil {
		return fmt.Errorf("protocol: could not parse move %q: %w", line, err)
	}
	if !b.ValidMove(m) {
		return fmt.Errorf("protocol: invalid move %q", line)
	}
	b.Do(m)
	return b.Validate()
}
