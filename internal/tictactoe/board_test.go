package tictactoe

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type move struct {
	x, y int
	mark Mark
}

// play applies moves through IsValidMove and fails the test on a rejected one.
func play(t *testing.T, board *Board, moves ...move) {
	t.Helper()

	for _, m := range moves {
		require.Truef(t, board.IsValidMove(m.x, m.y, m.mark), "move %v should be valid", m)
		board.Move(m.x, m.y, m.mark)
	}
}

// boardFrom builds a board straight from a grid, bypassing move validation.
func boardFrom(grid [Size][Size]Cell, lastMark Mark) *Board {
	board := &Board{cells: grid, lastMark: lastMark}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if grid[x][y] != Empty {
				board.markCount++
			}
		}
	}
	return board
}

func TestNewBoard(t *testing.T) {
	// When: a new board is created
	board := NewBoard()

	// Then: it is empty and X moves first
	assert.Equal(t, [Size][Size]Cell{}, board.Cells())
	assert.Equal(t, 0, board.MarkCount())
	assert.Equal(t, O, board.LastMark())
	assert.Equal(t, X, board.NextMark())
}

func TestBoard_IsValidMove(t *testing.T) {
	t.Run("X may open the game", func(t *testing.T) {
		board := NewBoard()

		assert.True(t, board.IsValidMove(1, 1, X))
	})

	t.Run("O may not open the game", func(t *testing.T) {
		board := NewBoard()

		assert.False(t, board.IsValidMove(1, 1, O))
	})

	t.Run("Same mark twice in a row is rejected", func(t *testing.T) {
		// Given: X has just played
		board := NewBoard()
		play(t, board, move{0, 0, X})

		// When: X tries to play again on an empty cell
		valid := board.IsValidMove(2, 2, X)

		// Then: the move is rejected
		assert.False(t, valid)
	})

	t.Run("Occupied cell is rejected", func(t *testing.T) {
		board := NewBoard()
		play(t, board, move{0, 0, X})

		assert.False(t, board.IsValidMove(0, 0, O))
	})

	t.Run("Out of range coordinates are rejected without touching the grid", func(t *testing.T) {
		// Bounds and occupancy are both required: an in-range check must not be
		// satisfied by an empty-looking cell, and vice versa.
		board := NewBoard()

		for _, c := range [][2]int{{5, 5}, {-1, 0}, {0, -1}, {3, 0}, {0, 3}, {-7, 42}} {
			assert.Falsef(t, board.IsValidMove(c[0], c[1], X), "(%d, %d) should be rejected", c[0], c[1])
		}

		// And: the board is unchanged
		assert.Equal(t, NewBoard(), board)
	})

	t.Run("Invalid mark is rejected", func(t *testing.T) {
		board := NewBoard()

		assert.False(t, board.IsValidMove(0, 0, Mark(0)))
		assert.False(t, board.IsValidMove(0, 0, Mark(7)))
	})
}

func TestBoard_Move(t *testing.T) {
	// Given: an empty board
	board := NewBoard()

	// When: X plays the center
	board.Move(1, 1, X)

	// Then: the cell is marked, the count grows and the last mark is X
	assert.Equal(t, CellOf(X), board.Cell(1, 1))
	assert.Equal(t, 1, board.MarkCount())
	assert.Equal(t, X, board.LastMark())
	assert.Equal(t, O, board.NextMark())
}

func TestBoard_CheckWin(t *testing.T) {
	t.Run("X completes column 0", func(t *testing.T) {
		board := NewBoard()
		play(t, board,
			move{0, 0, X},
			move{1, 1, O},
			move{0, 1, X},
			move{2, 2, O},
			move{0, 2, X},
		)

		winner, won := board.CheckWin()

		require.True(t, won)
		assert.Equal(t, X, winner)
	})

	t.Run("O completes a row", func(t *testing.T) {
		board := NewBoard()
		play(t, board,
			move{0, 0, X},
			move{0, 1, O},
			move{2, 2, X},
			move{1, 1, O},
			move{0, 2, X},
			move{2, 1, O},
		)

		winner, won := board.CheckWin()

		require.True(t, won)
		assert.Equal(t, O, winner)
	})

	t.Run("Main diagonal", func(t *testing.T) {
		board := NewBoard()
		play(t, board,
			move{0, 0, X},
			move{0, 1, O},
			move{1, 1, X},
			move{0, 2, O},
			move{2, 2, X},
		)

		winner, won := board.CheckWin()

		require.True(t, won)
		assert.Equal(t, X, winner)
	})

	t.Run("Anti-diagonal", func(t *testing.T) {
		board := NewBoard()
		play(t, board,
			move{2, 0, X},
			move{0, 0, O},
			move{1, 1, X},
			move{1, 0, O},
			move{0, 2, X},
		)

		winner, won := board.CheckWin()

		require.True(t, won)
		assert.Equal(t, X, winner)
	})

	t.Run("No winner below five marks even with a full line", func(t *testing.T) {
		// Given: an inconsistent board holding a full line with only four marks counted
		board := boardFrom([Size][Size]Cell{
			{CellOf(X), CellOf(X), CellOf(X)},
		}, X)
		board.markCount = 4

		// When: checking for a win
		_, won := board.CheckWin()

		// Then: the short-circuit reports no winner
		assert.False(t, won)
	})

	t.Run("Columns are scanned before rows and in index order", func(t *testing.T) {
		x, o := CellOf(X), CellOf(O)

		// Given: column 0 held by X and column 2 held by O
		columns := boardFrom([Size][Size]Cell{
			{x, x, x},
			{Empty, Empty, Empty},
			{o, o, o},
		}, O)

		// Given: row 0 held by O and row 2 held by X
		rows := boardFrom([Size][Size]Cell{
			{o, Empty, x},
			{o, Empty, x},
			{o, Empty, x},
		}, X)

		// Then: the lowest index line wins
		winner, won := columns.CheckWin()
		require.True(t, won)
		assert.Equal(t, X, winner)

		winner, won = rows.CheckWin()
		require.True(t, won)
		assert.Equal(t, O, winner)
	})

	t.Run("Ongoing game has no winner", func(t *testing.T) {
		board := NewBoard()
		play(t, board,
			move{0, 0, X},
			move{1, 1, O},
			move{2, 2, X},
			move{0, 2, O},
			move{2, 0, X},
		)

		_, won := board.CheckWin()

		assert.False(t, won)
	})
}

func TestBoard_CheckTie(t *testing.T) {
	t.Run("Full board without a line is a tie", func(t *testing.T) {
		// Given: nine alternating moves that complete no line
		board := NewBoard()
		play(t, board,
			move{0, 0, X},
			move{1, 1, O},
			move{2, 2, X},
			move{0, 1, O},
			move{2, 1, X},
			move{2, 0, O},
			move{0, 2, X},
			move{1, 2, O},
			move{1, 0, X},
		)

		// When: checking the outcome
		winner, won := board.CheckWin()

		// Then: nobody won and the game is tied
		require.False(t, won)
		assert.Equal(t, 9, board.MarkCount())
		assert.True(t, board.CheckTie())
		assert.True(t, board.CheckTieWith(winner, won))
	})

	t.Run("Win on the last move is not a tie", func(t *testing.T) {
		board := NewBoard()
		play(t, board,
			move{0, 0, X},
			move{1, 0, O},
			move{2, 0, X},
			move{1, 1, O},
			move{0, 1, X},
			move{2, 1, O},
			move{1, 2, X},
			move{0, 2, O},
			move{2, 2, X},
		)

		winner, won := board.CheckWin()

		require.True(t, won)
		assert.Equal(t, X, winner)
		assert.False(t, board.CheckTie())
		assert.False(t, board.CheckTieWith(winner, won))
	})

	t.Run("Partial board is not a tie", func(t *testing.T) {
		board := NewBoard()
		play(t, board, move{0, 0, X}, move{1, 1, O})

		assert.False(t, board.CheckTie())
		assert.False(t, board.CheckTieWith(0, false))
	})
}

// TestBoard_RandomGames plays random legal games and checks the engine invariants after every move.
func TestBoard_RandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := 0; game < 500; game++ {
		board := NewBoard()
		previous := board.LastMark()

		for {
			var free [][2]int
			for x := 0; x < Size; x++ {
				for y := 0; y < Size; y++ {
					if board.Cell(x, y) == Empty {
						free = append(free, [2]int{x, y})
					}
				}
			}
			if len(free) == 0 {
				break
			}

			pick := free[rng.Intn(len(free))]
			mark := board.NextMark()

			require.False(t, board.IsValidMove(pick[0], pick[1], mark.Opponent()))
			require.True(t, board.IsValidMove(pick[0], pick[1], mark))
			board.Move(pick[0], pick[1], mark)

			// marks alternate
			require.NotEqual(t, previous, board.LastMark())
			previous = board.LastMark()

			// markCount tracks the grid
			require.Equal(t, 9-len(free)+1, board.MarkCount())

			winner, won := board.CheckWin()
			if board.MarkCount() < minMarksToWin {
				require.False(t, won)
			}

			// read-only queries are idempotent
			again, wonAgain := board.CheckWin()
			require.Equal(t, winner, again)
			require.Equal(t, won, wonAgain)
			require.Equal(t, board.CheckTie(), board.CheckTie())

			if board.MarkCount() == maxMarks && !won {
				require.True(t, board.CheckTie())
			}

			if won {
				require.Equal(t, mark, winner)
				break
			}
		}
	}
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Survives a round trip through JSON", func(t *testing.T) {
		board := NewBoard()
		play(t, board, move{0, 0, X}, move{2, 1, O})

		data, err := json.Marshal(board)
		require.NoError(t, err)

		restored := &Board{}
		require.NoError(t, json.Unmarshal(data, restored))

		assert.Equal(t, board, restored)
	})

	t.Run("Rejects a mark count that disagrees with the grid", func(t *testing.T) {
		data := []byte(`{"cells":[["X","",""],["","",""],["","",""]],"last_mark":"X","mark_count":3}`)

		err := json.Unmarshal(data, &Board{})

		assert.ErrorIs(t, err, ErrCorruptBoard)
	})
}
