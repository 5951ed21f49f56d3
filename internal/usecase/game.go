package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-server/internal/repository"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

type GameUseCase interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	SubmitMove(ctx context.Context, gameID string, x, y int, playerMark string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn repository.UpdateFunc) (*entity.Game, error)
}

type recorder interface {
	GameCreated()
	MoveSubmitted(result string)
}

type gameUseCase struct {
	logger   *slog.Logger
	gameRepo gameRepo
	metrics  recorder
	newID    func() string
}

func NewGameUseCase(logger *slog.Logger, gameRepo gameRepo, metrics recorder) GameUseCase {
	return &gameUseCase{
		logger:   logger.With("component", "game-usecase"),
		gameRepo: gameRepo,
		metrics:  metrics,
		newID:    uuid.NewString,
	}
}

func (that *gameUseCase) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(that.newID())

	if err := that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.metrics.GameCreated()
	that.logger.Debug("game created", "game_id", game.ID)

	return game, nil
}

// SubmitMove looks the game up, parses the mark and plays the move, in that order,
// so an unknown game is reported before a bad mark.
func (that *gameUseCase) SubmitMove(ctx context.Context, gameID string, x, y int, playerMark string) (*entity.Game, error) {
	log := that.logger.With("method", "SubmitMove", "game_id", gameID)

	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		mark, err := tictactoe.ParseMark(playerMark)
		if err != nil {
			return err
		}

		return game.Play(x, y, mark)
	})
	if errors.Is(err, repository.ErrGameNotFound) {
		err = fmt.Errorf("%w: %s", apperror.ErrInvalidGame, gameID)
	}

	result := moveResult(game, err)
	that.metrics.MoveSubmitted(result)

	if err != nil {
		if result == metrics.ResultError {
			log.Error("failed to submit move", "error", err)
			return nil, fmt.Errorf("failed to submit move: %w", err)
		}

		log.Debug("move rejected", "x", x, "y", y, "mark", playerMark, "reason", err)
		return nil, err
	}

	log.Debug("move accepted", "x", x, "y", y, "mark", playerMark, "status", game.Status)

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidGame, gameID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func moveResult(game *entity.Game, err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidGame):
		return metrics.ResultInvalidGame
	case errors.Is(err, apperror.ErrInvalidMark):
		return metrics.ResultInvalidMark
	case errors.Is(err, apperror.ErrInvalidMove):
		return metrics.ResultInvalidMove
	case err != nil:
		return metrics.ResultError
	case game.Status == entity.StatusWin:
		return metrics.ResultWin
	case game.Status == entity.StatusTie:
		return metrics.ResultTie
	default:
		return metrics.ResultOngoing
	}
}
