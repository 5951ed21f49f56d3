package repository

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameAlreadyExists = errors.New("game already exists")
)

// UpdateFunc mutates a game in place. Returning an error discards the mutation.
type UpdateFunc func(game *entity.Game) error

// GameRepository is the registry of games keyed by id.
// Update calls for the same id are serialized.
type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error)
}
