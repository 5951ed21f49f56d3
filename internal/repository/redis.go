package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

const (
	gameKeyPrefix = "game:"
	lockKeyPrefix = "lock:game:"
)

type dbGame struct {
	logger *slog.Logger
	client *redis.Client
	locker *Locker
	ttl    time.Duration
}

// NewGameRepository stores games as JSON under game:<id>, expiring after ttl (0 keeps them forever).
// Updates hold a per-game lock for at most lockTTL.
func NewGameRepository(logger *slog.Logger, client *redis.Client, ttl, lockTTL time.Duration) GameRepository {
	return &dbGame{
		logger: logger.With("component", "redis-game-repository"),
		client: client,
		locker: NewLocker(client, lockKeyPrefix, lockTTL),
		ttl:    ttl,
	}
}

func (that *dbGame) Create(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	created, err := that.client.SetNX(ctx, gameKey(game.ID), gameJSON, that.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	if !created {
		return fmt.Errorf("%w: %s", ErrGameAlreadyExists, game.ID)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal(response, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error) {
	unlock, err := that.locker.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock game: %w", err)
	}

	defer func() {
		// release even when the request context is already gone
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			that.logger.Error("failed to unlock game", "game_id", id, "error", err)
		}
	}()

	game, err := that.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = fn(game); err != nil {
		return nil, err
	}

	gameJSON, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(id), gameJSON, that.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to set game: %w", err)
	}

	return game, nil
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}
