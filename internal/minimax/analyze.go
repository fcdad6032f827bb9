package minimax

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

// ScoredAction is a legal action with the minimax value of the board it leads to.
type ScoredAction struct {
	Action entity.Action `json:"action"`
	Value  int           `json:"value"`

	// wins is set when the action ends the game in the mover's favor.
	wins bool
}

// Analyze - scores every legal action on a non-terminal board and returns them
// best first for the side to move. Among equal values a move that wins on the
// spot comes first, then the order of tictactoe.Actions, so the head of the
// list is always BestAction. Children are searched on up to workers goroutines.
func Analyze(ctx context.Context, board entity.Board, workers int) ([]ScoredAction, error) {
	if tictactoe.Terminal(board) {
		return nil, apperror.ErrGameFinished
	}

	mover := tictactoe.Player(board)
	actions := tictactoe.Actions(board)
	scored := make([]ScoredAction, len(actions))

	group, groupCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}

	for i, action := range actions {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			next := mustResult(board, action)
			scored[i] = ScoredAction{
				Action: action,
				Value:  Value(next),
				wins:   tictactoe.Winner(next) == mover,
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to analyze board %s: %w", board, err)
	}

	maximizing := mover == entity.PlayerX
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Value != scored[j].Value {
			if maximizing {
				return scored[i].Value > scored[j].Value
			}
			return scored[i].Value < scored[j].Value
		}
		return scored[i].wins && !scored[j].wins
	})

	return scored, nil
}
