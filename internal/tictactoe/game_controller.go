package tictactoe

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
)

// winLines caches the winning index lists per board size.
var winLines sync.Map

// WinLines - every row, column and both diagonals of a size×size board.
// Order is row 0, column 0, row 1, column 1, ... then the main diagonal and the anti-diagonal.
func WinLines(size int) [][]int {
	if cached, ok := winLines.Load(size); ok {
		return cached.([][]int) //nolint: forcetypeassert // only this function stores
	}

	lines := make([][]int, 0, 2*size+2)
	for index := range size {
		row := make([]int, size)
		col := make([]int, size)
		for step := range size {
			row[step] = index*size + step
			col[step] = step*size + index
		}
		lines = append(lines, row, col)
	}

	diagonal := make([]int, size)
	antiDiagonal := make([]int, size)
	for step := range size {
		diagonal[step] = step*size + step
		antiDiagonal[step] = step*size + (size - 1 - step)
	}
	lines = append(lines, diagonal, antiDiagonal)

	actual, _ := winLines.LoadOrStore(size, lines)

	return actual.([][]int) //nolint: forcetypeassert // only this function stores
}

// CheckWinner - reports the status of a size×size board.
func CheckWinner(board []entity.Cell, size int) (entity.Status, error) {
	if size < 0 || len(board) != size*size {
		return entity.Status{}, fmt.Errorf("%w: %d cells for size %d", apperror.ErrInvalidBoardSize, len(board), size)
	}

	if len(board) == 0 {
		return entity.Status{}, apperror.ErrEmptyBoard
	}

	for _, line := range WinLines(size) {
		first := board[line[0]]
		if first.IsEmpty() || !first.IsValid() {
			continue
		}

		if lineOwnedBy(board, line, first) {
			return entity.Won(first.Player()), nil
		}
	}

	for _, cell := range board {
		if cell.IsEmpty() {
			return entity.Ongoing(), nil
		}
	}

	return entity.Draw(), nil
}

func lineOwnedBy(board []entity.Cell, line []int, mark entity.Cell) bool {
	for _, index := range line {
		if board[index] != mark {
			return false
		}
	}
	return true
}

// MakeTurn - writes the current player's mark into cell. Status and turn are left to the caller.
func MakeTurn(state *entity.GameState, cell int) error {
	if state.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(state, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	state.Board[cell] = state.CurrentPlayer.Mark()

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(state *entity.GameState, cell int) error {
	if cell < 0 || cell >= len(state.Board) {
		return fmt.Errorf("%w: index %d", apperror.ErrInvalidCell, cell)
	}

	if !state.Board[cell].IsEmpty() {
		return apperror.ErrCellOccupied
	}

	return nil
}

// UpdateGameStatus - recomputes the status after a placement and passes the turn if the game goes on.
func UpdateGameStatus(state *entity.GameState) error {
	size, err := state.Size()
	if err != nil {
		return err
	}

	status, err := CheckWinner(state.Board, size)
	if err != nil {
		return err
	}

	state.Status = status
	if status.IsOngoing() {
		state.TogglePlayer()
	}

	return nil
}
