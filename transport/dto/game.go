package dto

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

// Client facing error strings.
const (
	ErrMsgInvalidGame   = "Game does not exist."
	ErrMsgInvalidMark   = "Invalid player mark."
	ErrMsgInvalidMove   = "Invalid move."
	ErrMsgMalformed     = "Malformed request body."
	ErrMsgInternal      = "Internal server error."
	ErrMsgUnknownAction = "Unknown action."
)

type NewGameResponse struct {
	GameID string `json:"gameId"`
}

type MoveRequest struct {
	GameID     string `json:"gameId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	PlayerMark string `json:"playerMark"`
}

type GameRequest struct {
	GameID string `json:"gameId"`
}

// MoveResponse carries either a game state or an error, never both.
type MoveResponse struct {
	GameState string `json:"gameState,omitempty"`
	Winner    string `json:"winner,omitempty"`
	Error     string `json:"error,omitempty"`
}

type GameStateResponse struct {
	GameID    string     `json:"gameId,omitempty"`
	GameState string     `json:"gameState,omitempty"`
	Winner    string     `json:"winner,omitempty"`
	Board     [][]string `json:"board,omitempty"`
	Error     string     `json:"error,omitempty"`
}

func NewMoveResponse(game *entity.Game) MoveResponse {
	return MoveResponse{
		GameState: game.Status,
		Winner:    winner(game),
	}
}

func NewGameStateResponse(game *entity.Game) GameStateResponse {
	cells := game.Board.Cells()

	board := make([][]string, tictactoe.Size)
	for x := range cells {
		board[x] = make([]string, tictactoe.Size)
		for y := range cells[x] {
			board[x][y] = cells[x][y].String()
		}
	}

	return GameStateResponse{
		GameID:    game.ID,
		GameState: game.Status,
		Winner:    winner(game),
		Board:     board,
	}
}

// ErrorMessage maps a domain error to its client string. ok is false for anything
// outside the domain taxonomy, which callers report as an internal error.
func ErrorMessage(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, apperror.ErrInvalidGame):
		return ErrMsgInvalidGame, true
	case errors.Is(err, apperror.ErrInvalidMark):
		return ErrMsgInvalidMark, true
	case errors.Is(err, apperror.ErrInvalidMove):
		return ErrMsgInvalidMove, true
	default:
		return ErrMsgInternal, false
	}
}

func winner(game *entity.Game) string {
	if game.Status != entity.StatusWin {
		return ""
	}

	return game.Winner.String()
}
