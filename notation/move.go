// Package notation implements the text formats the protocol speaks at its
// boundary: move tokens and the 50-character state string. Nothing in here
// runs on the search hot path; board and engine never import it.
package notation

import (
	"fmt"
	"strings"

	"github.com/maksverver/dvonn-engine/board"
)

// Grammar (spec.md §6, grounded on original_source/IO.c's parse_move/
// format_move):
//
//	move  = "PASS" | place | stack
//	place = col row
//	stack = col row col row
//	col   = "A".."K"
//	row   = "1".."5"

// ParseMove parses a single whitespace-trimmed move token.
func ParseMove(s string) (board.Move, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "PASS") {
		return board.Move{Kind: board.KindPass}, nil
	}
	switch len(s) {
	case 2:
		n, err := parseCell(s)
		if err != nil {
			return board.Move{}, err
		}
		return board.Move{Kind: board.KindPlace, To: int8(n)}, nil
	case 4:
		from, err := parseCell(s[:2])
		if err != nil {
			return board.Move{}, err
		}
		to, err := parseCell(s[2:])
		if err != nil {
			return board.Move{}, err
		}
		return board.Move{Kind: board.KindStack, From: int8(from), To: int8(to)}, nil
	default:
		return board.Move{}, fmt.Errorf("notation: malformed move token %q", s)
	}
}

func parseCell(s string) (int, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("notation: malformed cell %q", s)
	}
	col := int(upper(s[0]) - 'A')
	row := int(s[1] - '1')
	if col < 0 || col >= board.W || row < 0 || row >= board.H {
		return 0, fmt.Errorf("notation: cell %q out of range", s)
	}
	n := board.CellIndex(col, row)
	if n < 0 {
		return 0, fmt.Errorf("notation: cell %q is not part of the board", s)
	}
	return n, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// FormatMove renders m in the same grammar ParseMove accepts.
func FormatMove(m board.Move) string {
	return m.String()
}
