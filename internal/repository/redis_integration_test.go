//go:build integration

package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-server/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_RedisContainer(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Logger, st.Storage, time.Hour, 5*time.Second)

	// Given: a game stored in a real Redis
	require.NoError(t, gameRepo.Create(ctx, entity.NewGame("123")))

	// When: X completes column 0
	moves := []struct {
		x, y int
		mark tictactoe.Mark
	}{
		{0, 0, tictactoe.X},
		{1, 1, tictactoe.O},
		{0, 1, tictactoe.X},
		{2, 2, tictactoe.O},
		{0, 2, tictactoe.X},
	}

	for _, m := range moves {
		_, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
			return game.Play(m.x, m.y, m.mark)
		})
		require.NoError(t, err)
	}

	// Then: the stored game is won by X
	stored, err := gameRepo.GetByID(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusWin, stored.Status)
	assert.Equal(t, tictactoe.X, stored.Winner)

	ttl, err := st.Storage.TTL(ctx, "game:123").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}
