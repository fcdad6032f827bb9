package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// WinLines are the 3 rows, 3 columns and 2 diagonals.
var WinLines = [8][3]entity.Action{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// Player - returns the mark whose turn it is. X moves first and O moves
// whenever X is ahead by one.
func Player(board entity.Board) entity.Mark {
	if board.Count(entity.PlayerX) > board.Count(entity.PlayerO) {
		return entity.PlayerO
	}

	return entity.PlayerX
}

// Actions - returns every empty cell in row-major order.
func Actions(board entity.Board) []entity.Action {
	actions := make([]entity.Action, 0, entity.CellCount)

	for row := range board {
		for col, cell := range board[row] {
			if cell == entity.EmptyCell {
				actions = append(actions, entity.Action{Row: row, Col: col})
			}
		}
	}

	return actions
}

// Result - returns the board after the side to move plays the action.
// The given board is never modified.
func Result(board entity.Board, action entity.Action) (entity.Board, error) {
	if !action.InBounds() {
		return board, fmt.Errorf("%w: cell %s is out of range", apperror.ErrIllegalMove, action)
	}

	if board.At(action) != entity.EmptyCell {
		return board, fmt.Errorf("%w: cell %s is occupied", apperror.ErrIllegalMove, action)
	}

	next := board
	next[action.Row][action.Col] = Player(board)

	return next, nil
}

// Winner - returns the mark holding a complete line, or EmptyCell.
func Winner(board entity.Board) entity.Mark {
	for _, line := range WinLines {
		a, b, c := board.At(line[0]), board.At(line[1]), board.At(line[2])
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

// Terminal - reports whether the game on the board is over.
func Terminal(board entity.Board) bool {
	if Winner(board) != entity.EmptyCell {
		return true
	}

	return board.Count(entity.EmptyCell) == 0
}

// Utility - scores a finished board: 1 if X won, -1 if O won, 0 otherwise.
// Only meaningful when Terminal(board) is true.
func Utility(board entity.Board) int {
	switch Winner(board) {
	case entity.PlayerX:
		return 1
	case entity.PlayerO:
		return -1
	default:
		return 0
	}
}

// Validate - checks that the mark counts could come from legal play.
func Validate(board entity.Board) error {
	diff := board.Count(entity.PlayerX) - board.Count(entity.PlayerO)
	if diff < 0 || diff > 1 {
		return fmt.Errorf("%w: X has %d marks and O has %d", apperror.ErrInvalidBoard,
			board.Count(entity.PlayerX), board.Count(entity.PlayerO))
	}

	return nil
}

// ParseBoard - decodes a row-major board string. Mark counts are not
// checked here, see Validate.
func ParseBoard(text string) (entity.Board, error) {
	board, err := entity.ParseBoard(text)
	if err != nil {
		return board, fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	return board, nil
}

// ParseValidBoard - decodes a board string and rejects boards whose mark
// counts could not come from legal play.
func ParseValidBoard(text string) (entity.Board, error) {
	board, err := ParseBoard(text)
	if err != nil {
		return board, err
	}

	if err = Validate(board); err != nil {
		return entity.Board{}, err
	}

	return board, nil
}
