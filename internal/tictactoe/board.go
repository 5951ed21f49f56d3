package tictactoe

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	Size = 3

	// minMarksToWin is the smallest mark count at which one player can hold a full line.
	minMarksToWin = 5
	maxMarks      = Size * Size
)

var ErrCorruptBoard = errors.New("corrupt board")

// Board is a 3x3 tic-tac-toe grid addressed as [x][y].
// The zero value is not ready for use; create boards with NewBoard.
type Board struct {
	cells     [Size][Size]Cell
	lastMark  Mark
	markCount int
}

// NewBoard returns an empty board on which X moves first.
func NewBoard() *Board {
	return &Board{lastMark: O}
}

// IsValidMove reports whether mark may be placed at (x, y): the coordinates
// must be on the board, the cell must be empty and mark must not repeat the last mark played.
func (that *Board) IsValidMove(x, y int, mark Mark) bool {
	if !inRange(x) || !inRange(y) {
		return false
	}

	return that.cells[x][y] == Empty && mark.Valid() && mark != that.lastMark
}

// Move places mark at (x, y) unconditionally. Call IsValidMove first.
func (that *Board) Move(x, y int, mark Mark) {
	that.cells[x][y] = CellOf(mark)
	that.markCount++
	that.lastMark = mark
}

// CheckWin returns the mark owning a complete line, if any.
// Columns and rows are scanned pairwise by index (column first), then both diagonals.
func (that *Board) CheckWin() (Mark, bool) {
	if that.markCount < minMarksToWin {
		return 0, false
	}

	c := &that.cells
	for i := 0; i < Size; i++ {
		if mark, ok := line(c[i][0], c[i][1], c[i][2]); ok {
			return mark, true
		}
		if mark, ok := line(c[0][i], c[1][i], c[2][i]); ok {
			return mark, true
		}
	}

	if mark, ok := line(c[0][0], c[1][1], c[2][2]); ok {
		return mark, true
	}

	return line(c[2][0], c[1][1], c[0][2])
}

// CheckTie reports a full board with no winner.
func (that *Board) CheckTie() bool {
	winner, won := that.CheckWin()
	return that.CheckTieWith(winner, won)
}

// CheckTieWith is CheckTie for a win result the caller already computed.
func (that *Board) CheckTieWith(_ Mark, won bool) bool {
	return !won && that.markCount == maxMarks
}

func (that *Board) Cell(x, y int) Cell {
	if !inRange(x) || !inRange(y) {
		return Empty
	}
	return that.cells[x][y]
}

// Cells returns a copy of the grid.
func (that *Board) Cells() [Size][Size]Cell {
	return that.cells
}

func (that *Board) LastMark() Mark {
	return that.lastMark
}

func (that *Board) MarkCount() int {
	return that.markCount
}

// NextMark is the mark expected to move next.
func (that *Board) NextMark() Mark {
	return that.lastMark.Opponent()
}

type boardJSON struct {
	Cells     [Size][Size]Cell `json:"cells"`
	LastMark  Mark             `json:"last_mark"`
	MarkCount int              `json:"mark_count"`
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Cells:     that.cells,
		LastMark:  that.lastMark,
		MarkCount: that.markCount,
	})
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	marked := 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if raw.Cells[x][y] != Empty {
				marked++
			}
		}
	}

	if marked != raw.MarkCount {
		return fmt.Errorf("%w: %d marks on the grid, mark count %d", ErrCorruptBoard, marked, raw.MarkCount)
	}

	that.cells = raw.Cells
	that.lastMark = raw.LastMark
	that.markCount = raw.MarkCount

	return nil
}

func inRange(v int) bool {
	return v >= 0 && v < Size
}

func line(a, b, c Cell) (Mark, bool) {
	if a == Empty || a != b || b != c {
		return 0, false
	}
	return a.Mark()
}
