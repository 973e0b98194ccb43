package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
)

// GameRepository - a single save slot; Save overwrites, last write wins.
type GameRepository interface {
	Save(ctx context.Context, state *entity.GameState) error
	Load(ctx context.Context) (*entity.GameState, error)
}

func encodeGame(state *entity.GameState) ([]byte, error) {
	gameJSON, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return gameJSON, nil
}

func decodeGame(data []byte) (*entity.GameState, error) {
	var state entity.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &state, nil
}
