package websocket

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-server/transport/dto"
)

// Handlers return an error only when the reply could not be written.

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	game, err := that.game.CreateGame(ctx)
	if err != nil {
		that.logger.Error("failed to create game", "method", "handleNewGame", "error", err)
		return that.sendError(conn, msg.Action, dto.ErrMsgInternal)
	}

	return that.sendMessage(conn, msg.Action, dto.NewGameResponse{GameID: game.ID})
}

func (that *Server) handleMove(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMove")

	var req dto.MoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		log.Warn("failed to unmarshal payload", "error", err)
		return that.sendError(conn, msg.Action, dto.ErrMsgMalformed)
	}

	game, err := that.game.SubmitMove(ctx, req.GameID, req.X, req.Y, req.PlayerMark)
	if err != nil {
		errMsg, ok := dto.ErrorMessage(err)
		if !ok {
			log.Error("failed to submit move", "game_id", req.GameID, "error", err)
		}

		return that.sendMessage(conn, msg.Action, dto.MoveResponse{Error: errMsg})
	}

	return that.sendMessage(conn, msg.Action, dto.NewMoveResponse(game))
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameState")

	var req dto.GameRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		log.Warn("failed to unmarshal payload", "error", err)
		return that.sendError(conn, msg.Action, dto.ErrMsgMalformed)
	}

	game, err := that.game.GetGame(ctx, req.GameID)
	if err != nil {
		errMsg, ok := dto.ErrorMessage(err)
		if !ok {
			log.Error("failed to get game", "game_id", req.GameID, "error", err)
		}

		return that.sendMessage(conn, msg.Action, dto.GameStateResponse{Error: errMsg})
	}

	return that.sendMessage(conn, msg.Action, dto.NewGameStateResponse(game))
}
