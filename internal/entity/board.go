package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Mark is the content of a single cell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

const (
	// BoardSize is the length of a board side.
	BoardSize = 3
	// CellCount is the number of cells on a board.
	CellCount = BoardSize * BoardSize
)

var ErrInvalidBoardText = errors.New("invalid board text")

// Action identifies one cell by its 0-indexed row and column.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// InBounds reports whether the action points inside the board.
func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Board is a 3x3 grid. It is an array, so every assignment copies it and a
// board handed to another function can never be changed under the caller.
type Board [BoardSize][BoardSize]Mark

// InitialState - returns the empty starting board.
func InitialState() Board {
	return Board{}
}

// At - returns the mark at the given cell.
func (that Board) At(action Action) Mark {
	return that[action.Row][action.Col]
}

// Count - returns how many cells hold the given mark.
func (that Board) Count(mark Mark) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}

// String - encodes the board row-major as 9 characters: '.' empty, 'X', 'O'.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(CellCount)

	for _, row := range that {
		for _, cell := range row {
			sb.WriteByte(markToChar(cell))
		}
	}

	return sb.String()
}

// Render - draws the board for a console.
func (that Board) Render() string {
	lines := make([]string, 0, 2*BoardSize-1)

	for i, row := range that {
		if i > 0 {
			lines = append(lines, "-+-+-")
		}

		cells := make([]string, 0, BoardSize)
		for _, cell := range row {
			cells = append(cells, string(markToChar(cell)))
		}
		lines = append(lines, strings.Join(cells, "|"))
	}

	return strings.Join(lines, "\n")
}

// ParseBoard - decodes a board from its 9 character row-major form. It only
// checks the characters; rule checks belong to the tictactoe package.
func ParseBoard(text string) (Board, error) {
	var board Board

	if len(text) != CellCount {
		return board, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoardText, CellCount, len(text))
	}

	for i := 0; i < CellCount; i++ {
		mark, ok := charToMark(text[i])
		if !ok {
			return Board{}, fmt.Errorf("%w: unexpected character %q at %d", ErrInvalidBoardText, text[i], i)
		}
		board[i/BoardSize][i%BoardSize] = mark
	}

	return board, nil
}

func (that Board) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Board) UnmarshalText(text []byte) error {
	board, err := ParseBoard(string(text))
	if err != nil {
		return err
	}

	*that = board

	return nil
}

// Opponent - returns the other player's mark.
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

// IsPlayer reports whether the mark is X or O.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func markToChar(mark Mark) byte {
	switch mark {
	case PlayerX:
		return 'X'
	case PlayerO:
		return 'O'
	default:
		return '.'
	}
}

func charToMark(char byte) (Mark, bool) {
	switch char {
	case '.':
		return EmptyCell, true
	case 'X', 'x':
		return PlayerX, true
	case 'O', 'o':
		return PlayerO, true
	default:
		return EmptyCell, false
	}
}
