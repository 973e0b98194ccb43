package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
)

const DefaultBoardSize = 3

var ErrMissingField = errors.New("missing field")

// Cell - one square of the board, stored as a single character.
type Cell string

const (
	EmptyCell Cell = " "
	CellX     Cell = "X"
	CellO     Cell = "O"
)

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

func (that Cell) IsValid() bool {
	return that == EmptyCell || that == CellX || that == CellO
}

// Player - the player owning the mark; only meaningful for non-empty cells.
func (that Cell) Player() Player {
	return Player(that)
}

// GameState - everything that is persisted between runs.
type GameState struct {
	Board         []Cell `json:"board"`
	CurrentPlayer Player `json:"current_player"`
	Status        Status `json:"status"`
}

// UnmarshalJSON - board, current_player and status are all required.
func (that *GameState) UnmarshalJSON(data []byte) error {
	var raw struct {
		Board         *[]Cell `json:"board"`
		CurrentPlayer *Player `json:"current_player"`
		Status        *Status `json:"status"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("could not decode game: %w", err)
	}

	switch {
	case raw.Board == nil:
		return fmt.Errorf("%w: board", ErrMissingField)
	case raw.CurrentPlayer == nil:
		return fmt.Errorf("%w: current_player", ErrMissingField)
	case raw.Status == nil:
		return fmt.Errorf("%w: status", ErrMissingField)
	}

	that.Board = *raw.Board
	that.CurrentPlayer = *raw.CurrentPlayer
	that.Status = *raw.Status

	return nil
}

// NewGameState - an empty size×size board with X to move.
func NewGameState(size int) (*GameState, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	if size == 0 {
		return nil, apperror.ErrEmptyBoard
	}

	board := make([]Cell, size*size)
	for i := range board {
		board[i] = EmptyCell
	}

	return &GameState{
		Board:         board,
		CurrentPlayer: PlayerX,
		Status:        Ongoing(),
	}, nil
}

// Size - side length of the board, derived from the number of cells.
func (that *GameState) Size() (int, error) {
	cells := len(that.Board)
	if cells == 0 {
		return 0, apperror.ErrEmptyBoard
	}

	size := 1
	for size*size < cells {
		size++
	}

	if size*size != cells {
		return 0, fmt.Errorf("%w: %d cells is not a square board", apperror.ErrInvalidBoardSize, cells)
	}

	return size, nil
}

// Validate - checks a state that came from outside (a save file) before it is played.
func (that *GameState) Validate() error {
	if _, err := that.Size(); err != nil {
		return err
	}

	for i, cell := range that.Board {
		if !cell.IsValid() {
			return fmt.Errorf("%w: %q at %d", apperror.ErrInvalidCell, string(cell), i)
		}
	}

	if !that.CurrentPlayer.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, that.CurrentPlayer)
	}

	return nil
}

func (that *GameState) IsFinished() bool {
	return that.Status.IsFinished()
}

func (that *GameState) IsOngoing() bool {
	return that.Status.IsOngoing()
}

// ConfirmOngoingState - a finished game can't be resumed.
func (that *GameState) ConfirmOngoingState() error {
	switch that.Status.Kind {
	case StatusOngoing:
		return nil
	case StatusWon, StatusDraw:
		return fmt.Errorf("%w: %s", apperror.ErrGameOver, that.Status)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownGameStatus, that.Status.Kind)
	}
}

// TogglePlayer - hands the turn to the other player.
func (that *GameState) TogglePlayer() {
	that.CurrentPlayer = that.CurrentPlayer.Other()
}

// Clone - deep copy, the board slice is not shared.
func (that *GameState) Clone() *GameState {
	board := make([]Cell, len(that.Board))
	copy(board, that.Board)

	return &GameState{
		Board:         board,
		CurrentPlayer: that.CurrentPlayer,
		Status:        that.Status,
	}
}
