// Package minimax finds optimal tic-tac-toe moves with an exhaustive
// alpha-beta search. X maximizes the utility, O minimizes it.
package minimax

import (
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

// Sentinel bounds. Utilities are always in [-1, 1], so these are never returned.
const (
	negInf = -2
	posInf = 2
)

// BestAction - returns the optimal action for the side to move. The second
// result is false when the board is already terminal.
//
// A move that wins on the spot is taken before any deeper search, so an
// immediate win is always preferred over a slower forced win.
func BestAction(board entity.Board) (entity.Action, bool) {
	if tictactoe.Terminal(board) {
		return entity.Action{}, false
	}

	mover := tictactoe.Player(board)
	alpha, beta := negInf, posInf

	var bestMove entity.Action
	best := posInf
	if mover == entity.PlayerX {
		best = negInf
	}

	for _, action := range tictactoe.Actions(board) {
		next := mustResult(board, action)

		if tictactoe.Winner(next) == mover {
			return action, true
		}

		if mover == entity.PlayerX {
			if high := minValue(next, alpha, beta); high > best {
				best, bestMove = high, action
			}
		} else {
			if low := maxValue(next, alpha, beta); low < best {
				best, bestMove = low, action
			}
		}
	}

	return bestMove, true
}

// Value - returns the minimax value of the board under optimal play.
func Value(board entity.Board) int {
	if tictactoe.Player(board) == entity.PlayerX {
		return maxValue(board, negInf, posInf)
	}

	return minValue(board, negInf, posInf)
}

func maxValue(board entity.Board, alpha, beta int) int {
	if tictactoe.Terminal(board) {
		return tictactoe.Utility(board)
	}

	v := negInf
	for _, action := range tictactoe.Actions(board) {
		v = max(v, minValue(mustResult(board, action), alpha, beta))

		alpha = max(alpha, v)
		if alpha > beta {
			break
		}
	}

	return v
}

func minValue(board entity.Board, alpha, beta int) int {
	if tictactoe.Terminal(board) {
		return tictactoe.Utility(board)
	}

	v := posInf
	for _, action := range tictactoe.Actions(board) {
		v = min(v, maxValue(mustResult(board, action), alpha, beta))

		beta = min(beta, v)
		if alpha > beta {
			break
		}
	}

	return v
}

// mustResult applies an action taken from tictactoe.Actions, which is
// always legal on the same board.
func mustResult(board entity.Board, action entity.Action) entity.Board {
	next, err := tictactoe.Result(board, action)
	if err != nil {
		panic(err)
	}

	return next
}
