package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
)

const defaultSlot = "default"

type sqliteGame struct {
	conn *sql.DB
	slot string
}

// NewSQLiteGameRepository - keeps the save as a row of the saves table.
func NewSQLiteGameRepository(conn *sql.DB) GameRepository {
	return &sqliteGame{
		conn: conn,
		slot: defaultSlot,
	}
}

func (that *sqliteGame) Save(ctx context.Context, state *entity.GameState) error {
	gameJSON, err := encodeGame(state)
	if err != nil {
		return err
	}

	query := `INSERT INTO saves (slot, state) VALUES (?, ?)
		ON CONFLICT (slot) DO UPDATE SET state = excluded.state`

	if _, err = that.conn.ExecContext(ctx, query, that.slot, string(gameJSON)); err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	return nil
}

func (that *sqliteGame) Load(ctx context.Context) (*entity.GameState, error) {
	query := `SELECT state FROM saves WHERE slot = ?`

	var gameJSON string

	err := that.conn.QueryRowContext(ctx, query, that.slot).Scan(&gameJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: slot %s", apperror.ErrSaveNotFound, that.slot)
	}
	if err != nil {
		return nil, fmt.Errorf("can't load game: %w", err)
	}

	return decodeGame([]byte(gameJSON))
}
