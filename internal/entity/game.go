package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

const (
	StatusOngoing = "ongoing"
	StatusWin     = "win"
	StatusTie     = "tie"
)

// Game is a board tracked by the registry together with its outcome.
type Game struct {
	ID     string           `json:"id"`
	Board  *tictactoe.Board `json:"board"`
	Status string           `json:"status"`
	Winner tictactoe.Mark   `json:"winner,omitempty"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  tictactoe.NewBoard(),
		Status: StatusOngoing,
	}
}

// Play validates and applies one move, then derives the game status.
// A rejected move leaves the game untouched.
func (that *Game) Play(x, y int, mark tictactoe.Mark) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !that.Board.IsValidMove(x, y, mark) {
		return fmt.Errorf("%w: %s at (%d, %d)", apperror.ErrInvalidMove, mark, x, y)
	}

	that.Board.Move(x, y, mark)
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	winner, won := that.Board.CheckWin()

	switch {
	case won:
		that.Status = StatusWin
		that.Winner = winner
	case that.Board.CheckTieWith(winner, won):
		that.Status = StatusTie
		that.Winner = 0
	default:
		that.Status = StatusOngoing
		that.Winner = 0
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWin || that.Status == StatusTie
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// Clone returns a deep copy of the game.
func (that *Game) Clone() *Game {
	clone := *that
	if that.Board != nil {
		board := *that.Board
		clone.Board = &board
	}
	return &clone
}
