package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// MakeTurn - plays the action for the given mark and updates the game status.
func MakeTurn(gameInstance *entity.Game, mark entity.Mark, action entity.Action) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if gameInstance.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	next, err := Result(gameInstance.Board, action)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Board = next
	UpdateGameStatus(gameInstance)

	return nil
}

// UpdateGameStatus - derives winner, status and turn from the board.
func UpdateGameStatus(gameInstance *entity.Game) {
	switch result := GameResult(gameInstance.Board); result {
	case string(entity.PlayerX), string(entity.PlayerO), entity.PlayerTie:
		gameInstance.Winner = result
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = entity.EmptyCell
	default:
		gameInstance.Status = entity.StatusOngoing
		gameInstance.Turn = Player(gameInstance.Board)
	}
}

// GameResult - returns "X" or "O" for a win, "-" for a tie and "" while the
// game goes on.
func GameResult(board entity.Board) string {
	if winner := Winner(board); winner != entity.EmptyCell {
		return string(winner)
	}

	if Terminal(board) {
		return entity.PlayerTie
	}

	return ""
}
