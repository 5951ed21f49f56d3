package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
)

// Mark is a player's symbol. Only X and O are valid marks.
type Mark uint8

const (
	X Mark = iota + 1
	O
)

// ParseMark converts the wire form of a mark ("X" or "O") into a Mark.
// Matching is case-sensitive.
func ParseMark(s string) (Mark, error) {
	switch s {
	case "X":
		return X, nil
	case "O":
		return O, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

func (m Mark) Valid() bool {
	return m == X || m == O
}

// Opponent returns the other player's mark.
func (m Mark) Opponent() Mark {
	if m == X {
		return O
	}
	return X
}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

func (m Mark) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidMark, m)
	}
	return []byte(m.String()), nil
}

func (m *Mark) UnmarshalText(text []byte) error {
	parsed, err := ParseMark(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Cell is one position of the grid: Empty or holding a mark.
type Cell uint8

const Empty Cell = 0

// CellOf returns the cell value holding mark.
func CellOf(mark Mark) Cell {
	return Cell(mark)
}

// Mark reports the mark held by the cell, if any.
func (c Cell) Mark() (Mark, bool) {
	if c == Empty {
		return 0, false
	}
	return Mark(c), true
}

func (c Cell) String() string {
	return Mark(c).String()
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Empty
		return nil
	}

	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}
	*c = CellOf(mark)
	return nil
}
