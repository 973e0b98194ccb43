package apperror

import "errors"

var (
	ErrInvalidBoardSize = errors.New("the board size is invalid")
	ErrEmptyBoard       = errors.New("the board is empty")
	ErrGameOver         = errors.New("cannot load a game that is over")
	ErrGameFinished     = errors.New("game is already finished")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell")
	ErrSaveNotFound     = errors.New("no saved game found")
)
