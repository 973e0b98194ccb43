package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tui/internal/tictactoe"
)

type gameRepo interface {
	Save(ctx context.Context, state *entity.GameState) error
	Load(ctx context.Context) (*entity.GameState, error)
}

// GameManager - the game's state transitions, shared by every front-end.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
	}
}

// NewGame - a fresh board; nothing is persisted until the first mark.
func (that *GameManager) NewGame(size int) (*entity.GameState, error) {
	state, err := entity.NewGameState(size)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	that.logger.Debug("new game", "size", size)

	return state, nil
}

// LoadGame - the saved game, only if it is well formed and still ongoing.
func (that *GameManager) LoadGame(ctx context.Context) (*entity.GameState, error) {
	state, err := that.gameRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	if err = state.Validate(); err != nil {
		return nil, fmt.Errorf("saved game is corrupt: %w", err)
	}

	if err = state.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	size, _ := state.Size()

	status, err := tictactoe.CheckWinner(state.Board, size)
	if err != nil {
		return nil, fmt.Errorf("saved game is corrupt: %w", err)
	}

	if !status.IsOngoing() {
		return nil, fmt.Errorf("%w: board is already %s", apperror.ErrGameOver, status)
	}

	that.logger.Info("game loaded", "player", state.CurrentPlayer, "cells", len(state.Board))

	return state, nil
}

// MakeTurn - places the current player's mark on cell and persists after the placement
// and again after the status or turn changed.
func (that *GameManager) MakeTurn(ctx context.Context, state *entity.GameState, cell int) error {
	if err := tictactoe.MakeTurn(state, cell); err != nil {
		return err
	}

	if err := that.gameRepo.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	if err := tictactoe.UpdateGameStatus(state); err != nil {
		return fmt.Errorf("failed to check game status: %w", err)
	}

	if err := that.gameRepo.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	log := that.logger.With("cell", cell, "status", state.Status.String())
	if state.IsFinished() {
		log.Info("game finished")
	} else {
		log.Debug("turn made", "next", state.CurrentPlayer)
	}

	return nil
}
