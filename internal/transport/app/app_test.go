package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tui/internal/repository"
	"github.com/rocketscienceinc/tictactoe-tui/internal/usecase"
)

func newGames(t *testing.T) (*usecase.GameManager, repository.GameRepository) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	gameRepo := repository.NewFileGameRepository(filepath.Join(t.TempDir(), "save_game.json"))

	return usecase.NewGameManager(logger, gameRepo), gameRepo
}

// runWithKeys - runs the app on a simulation screen; the app finalizes the screen when it stops.
func runWithKeys(t *testing.T, games gameManager, size int, keys ...*tcell.EventKey) (*Result, error) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app := New(logger, screen, games)

	go func() {
		for _, key := range keys {
			screen.InjectKey(key.Key(), key.Rune(), key.Modifiers())
		}
	}()

	return app.Run(context.Background(), size)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestApp_Run(t *testing.T) {
	t.Run("X wins on the diagonal", func(t *testing.T) {
		// Given: a new game
		games, _ := newGames(t)
		enter := key(tcell.KeyEnter)

		// When: X takes 0, 4, 8 while O takes 1, 5, then any key closes the app
		result, err := runWithKeys(t, games, 3,
			runeKey('n'),
			enter,
			runeKey('l'), enter,
			runeKey('j'), enter,
			runeKey('l'), enter,
			runeKey('j'), enter,
			runeKey('x'),
		)

		// Then: X won
		require.NoError(t, err)
		assert.True(t, result.Finished)
		assert.Equal(t, "Player X wins!", result.Message)
		assert.Equal(t, entity.Won(entity.PlayerX), result.State.Status)
	})

	t.Run("w places like enter", func(t *testing.T) {
		games, _ := newGames(t)

		result, err := runWithKeys(t, games, 3, runeKey('n'), runeKey('w'), runeKey('q'))

		require.NoError(t, err)
		assert.False(t, result.Finished)
		assert.Equal(t, entity.CellX, result.State.Board[0])
		assert.Equal(t, entity.PlayerO, result.State.CurrentPlayer)
	})

	t.Run("Quit at the prompt", func(t *testing.T) {
		games, _ := newGames(t)

		result, err := runWithKeys(t, games, 3, runeKey('q'))

		require.NoError(t, err)
		assert.Nil(t, result.State)
	})

	t.Run("Escape at the prompt", func(t *testing.T) {
		games, _ := newGames(t)

		result, err := runWithKeys(t, games, 3, key(tcell.KeyEscape))

		require.NoError(t, err)
		assert.Nil(t, result.State)
	})

	t.Run("Missing save falls back to a new game", func(t *testing.T) {
		// Given: nothing was saved
		games, _ := newGames(t)

		// When: the player asks to load
		result, err := runWithKeys(t, games, 4, runeKey('y'), runeKey('q'))

		// Then: a fresh 4x4 board and the failure explained
		require.NoError(t, err)
		assert.Len(t, result.State.Board, 16)
		assert.Contains(t, result.Message, apperror.ErrSaveNotFound.Error())
		assert.Contains(t, result.Message, "Loading new empty game.")
	})
}

func TestApp_Grid(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("Loaded save drives the grid size", func(t *testing.T) {
		// Given: a saved 4x4 game with X in the second row
		games, gameRepo := newGames(t)
		saved, err := entity.NewGameState(4)
		require.NoError(t, err)
		saved.Board[5] = entity.CellX
		saved.CurrentPlayer = entity.PlayerO
		require.NoError(t, gameRepo.Save(ctx, saved))

		app := New(logger, nil, games)
		app.size = 3

		// When: the player loads it
		app.answer(ctx, true)

		// Then: a 4x4 grid with the mark in place
		assert.Equal(t, 4, app.size)
		assert.Equal(t, " X ", app.grid.GetCell(1, 1).Text)
		assert.Equal(t, "   ", app.grid.GetCell(3, 3).Text)
		assert.Contains(t, app.status.GetText(true), "Game loaded successfully.")
	})

	t.Run("Placing refreshes the grid", func(t *testing.T) {
		// Given: a new 3x3 game
		games, _ := newGames(t)
		app := New(logger, nil, games)
		app.size = 3
		app.answer(ctx, false)

		// When: X activates the centre
		app.place(ctx, 1, 1)

		// Then: the cell shows X and O is to move
		assert.Equal(t, " X ", app.grid.GetCell(1, 1).Text)
		assert.Contains(t, app.status.GetText(true), "Player O to move")
	})

	t.Run("Occupied cell is ignored", func(t *testing.T) {
		games, _ := newGames(t)
		app := New(logger, nil, games)
		app.size = 3
		app.answer(ctx, false)

		app.place(ctx, 0, 0)
		app.place(ctx, 0, 0)

		assert.Equal(t, entity.PlayerO, app.state.CurrentPlayer)
		assert.NoError(t, app.err)
	})
}
