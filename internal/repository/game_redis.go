package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
)

type dbGame struct {
	client *redis.Client
	key    string
}

// NewRedisGameRepository - keeps the save under a single redis key.
func NewRedisGameRepository(client *redis.Client, key string) GameRepository {
	return &dbGame{
		client: client,
		key:    key,
	}
}

func (that *dbGame) Save(ctx context.Context, state *entity.GameState) error {
	gameJSON, err := encodeGame(state)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, that.key, gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) Load(ctx context.Context) (*entity.GameState, error) {
	response, err := that.client.Get(ctx, that.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: key %s", apperror.ErrSaveNotFound, that.key)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return decodeGame(response)
}

