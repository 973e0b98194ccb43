package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
)

const saveFileMode = 0o644

type fileGame struct {
	path string
}

// NewFileGameRepository - keeps the save as a JSON document at path.
func NewFileGameRepository(path string) GameRepository {
	return &fileGame{
		path: path,
	}
}

func (that *fileGame) Save(_ context.Context, state *entity.GameState) error {
	gameJSON, err := encodeGame(state)
	if err != nil {
		return err
	}

	if err = os.WriteFile(that.path, gameJSON, saveFileMode); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}

	return nil
}

func (that *fileGame) Load(_ context.Context) (*entity.GameState, error) {
	data, err := os.ReadFile(that.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSaveNotFound, that.path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	return decodeGame(data)
}
