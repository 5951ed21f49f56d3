package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/transport/dto"
)

type gameUseCase interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	SubmitMove(ctx context.Context, gameID string, x, y int, playerMark string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type Handlers interface {
	Ping(w http.ResponseWriter, r *http.Request)

	NewGame(w http.ResponseWriter, r *http.Request)
	Move(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger *slog.Logger
	game   gameUseCase
}

func NewHandlers(logger *slog.Logger, game gameUseCase) Handlers {
	return &handlers{
		logger: logger.With("component", "rest-handlers"),
		game:   game,
	}
}

func (that *handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.game.CreateGame(r.Context())
	if err != nil {
		that.logger.Error("failed to create game", "method", "NewGame", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, dto.MoveResponse{Error: dto.ErrMsgInternal})
		return
	}

	that.writeJSON(w, http.StatusOK, dto.NewGameResponse{GameID: game.ID})
}

// Move answers domain rejections with 200 and an error string; only a broken body
// or an infrastructure failure changes the status code.
func (that *handlers) Move(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Move")

	var req dto.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request body", "error", err)
		that.writeJSON(w, http.StatusBadRequest, dto.MoveResponse{Error: dto.ErrMsgMalformed})
		return
	}

	game, err := that.game.SubmitMove(r.Context(), req.GameID, req.X, req.Y, req.PlayerMark)
	if err != nil {
		msg, ok := dto.ErrorMessage(err)
		if !ok {
			log.Error("failed to submit move", "game_id", req.GameID, "error", err)
			that.writeJSON(w, http.StatusInternalServerError, dto.MoveResponse{Error: msg})
			return
		}

		that.writeJSON(w, http.StatusOK, dto.MoveResponse{Error: msg})
		return
	}

	that.writeJSON(w, http.StatusOK, dto.NewMoveResponse(game))
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	game, err := that.game.GetGame(r.Context(), gameID)
	if err != nil {
		msg, ok := dto.ErrorMessage(err)
		if !ok {
			that.logger.Error("failed to get game", "method", "GetGame", "game_id", gameID, "error", err)
			that.writeJSON(w, http.StatusInternalServerError, dto.GameStateResponse{Error: msg})
			return
		}

		that.writeJSON(w, http.StatusNotFound, dto.GameStateResponse{Error: msg})
		return
	}

	that.writeJSON(w, http.StatusOK, dto.NewGameStateResponse(game))
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
