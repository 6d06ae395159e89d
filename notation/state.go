package notation

import (
	"fmt"
	"strings"

	"github.com/maksverver/dvonn-engine/board"
)

// State strings are a compact, shareable snapshot of a position: one
// header digit encoding game phase and side to move, followed by one
// digit per cell (spec.md §6; original_source/IO.c's format_state/
// parse_state, kept byte-for-byte including its unusual alphabet order).
const stateLen = 1 + board.N

const stateDigits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxEncodablePieces is the tallest stack a single state-string digit can
// represent (4*15 + 2 + 1 - 2 == 61, the top of the 62-symbol alphabet).
const maxEncodablePieces = 15

// overflowDigit marks a stack too tall to encode, exactly as
// original_source/IO.c's format_state emits '*' rather than failing.
const overflowDigit = '*'

// FormatState renders b as a state string. It never fails: a stack taller
// than maxEncodablePieces is written as '*', which ParseState will reject
// if it is ever fed back in (matching the reference implementation, which
// has the same blind spot).
func FormatState(b *board.Board) string {
	buf := make([]byte, stateLen)

	if b.Moves < board.N {
		buf[0] = stateDigits[b.Moves%2]
	} else {
		buf[0] = stateDigits[2+(b.Moves-board.N)%2]
	}

	for n := 0; n < board.N; n++ {
		f := &b.Fields[n]
		switch {
		case f.Pieces > maxEncodablePieces:
			buf[n+1] = overflowDigit
		case f.Removed != 0 || f.Pieces == 0:
			buf[n+1] = stateDigits[0]
		case f.Player == board.NoPlayer:
			buf[n+1] = stateDigits[1]
		default:
			buf[n+1] = stateDigits[4*int(f.Pieces)+2*dvonnBit(f.Dvonns)+int(f.Player)-2]
		}
	}
	return string(buf)
}

func dvonnBit(dvonns uint8) int {
	if dvonns > 0 {
		return 1
	}
	return 0
}

// ParseState reconstructs a board from a state string previously produced
// by FormatState.
func ParseState(s string) (board.Board, error) {
	if len(s) != stateLen {
		return board.Board{}, fmt.Errorf("notation: state string has length %d, want %d", len(s), stateLen)
	}
	vals := make([]int, stateLen)
	for i := 0; i < stateLen; i++ {
		v := strings.IndexByte(stateDigits, s[i])
		if v < 0 {
			return board.Board{}, fmt.Errorf("notation: invalid state digit %q at position %d", s[i], i)
		}
		vals[i] = v
	}

	var b board.Board
	b.Clear()

	nextPlayer := board.Player(vals[0] % 2)
	finished := false
	switch (vals[0] / 2) % 3 {
	case 0: // placement phase: leave b.Moves at 0
	case 2:
		finished = true
		fallthrough
	case 1:
		b.Moves = board.N
	}
	if finished {
		nextPlayer = board.NoPlayer
	}

	for n := 0; n < board.N; n++ {
		v := vals[n+1]
		switch {
		case v == 0:
			if b.Moves >= board.N {
				b.Fields[n] = board.Field{Removed: int32(board.N)}
				b.Moves++
			}
			// else: still unplaced, leave Clear()'s empty field as is.
		case v == 1:
			b.Fields[n] = board.Field{Player: board.NoPlayer, Pieces: 1, Dvonns: 1}
			if b.Moves < board.N {
				b.Moves++
			}
		default:
			b.Fields[n] = board.Field{
				Player: board.Player((v + 2) % 2),
				Dvonns: uint8((v + 2) / 2 % 2),
				Pieces: uint8((v + 2) / 4),
			}
			if b.Moves < board.N {
				b.Moves++
			}
		}
	}

	// The disconnection rule can remove an odd number of stacks during the
	// stacking phase, which shifts the side-to-move parity by one relative
	// to a straight count of occupied/empty fields; correct for it here
	// (original_source/IO.c's parse_state does the same adjustment).
	if nextPlayer != board.NoPlayer && b.NextPlayer() != nextPlayer {
		b.Moves--
	}

	b.RebuildDerived()
	return b, nil
}

