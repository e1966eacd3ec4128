package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-scores/internal/apperror"
)

// Mark is the symbol a player puts on the board.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidMark = errors.New("invalid mark")

	// WinCombos are scanned in this order: rows, columns, then the two diagonals.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Board is the 3x3 grid stored row-major.
type Board [9]Mark

// Place puts mark into an empty cell. The board is left untouched on error.
func (that *Board) Place(cell int, mark Mark) error {
	if cell < 0 || cell >= len(that) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	if that[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that[cell] = mark

	return nil
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells returns the indexes of free cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// CheckWinner reports the first line in WinCombos order fully owned by mark.
func (that Board) CheckWinner(mark Mark) ([3]int, bool) {
	if !mark.IsPlayer() {
		return [3]int{}, false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return combo, true
		}
	}

	return [3]int{}, false
}

// IsDraw is true for a full board on which neither mark owns a line.
func (that Board) IsDraw() bool {
	if !that.IsFull() {
		return false
	}

	if _, won := that.CheckWinner(PlayerX); won {
		return false
	}

	_, won := that.CheckWinner(PlayerO)

	return !won
}
