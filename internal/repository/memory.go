package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

type memoryEntry struct {
	mu   sync.Mutex
	game *entity.Game
}

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]*memoryEntry
}

// NewMemoryGameRepository keeps games in process memory. Nothing is ever evicted.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]*memoryEntry),
	}
}

func (that *memoryGame) Create(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[game.ID]; ok {
		return fmt.Errorf("%w: %s", ErrGameAlreadyExists, game.ID)
	}

	that.games[game.ID] = &memoryEntry{game: game.Clone()}

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	entry, ok := that.entry(id)
	if !ok {
		return nil, ErrGameNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.game.Clone(), nil
}

func (that *memoryGame) Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error) {
	entry, ok := that.entry(id)
	if !ok {
		return nil, ErrGameNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	game := entry.game.Clone()
	if err := fn(game); err != nil {
		return nil, err
	}

	entry.game = game

	return game.Clone(), nil
}

func (that *memoryGame) entry(id string) (*memoryEntry, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.games[id]
	return entry, ok
}
