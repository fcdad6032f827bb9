// Command solve prints the optimal tic-tac-toe move for a board, or plays an
// interactive game against the engine on the console.
//
//	solve XX.O.O...
//	solve -play -mark O
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

var errUsage = errors.New("usage: solve <board> | solve -play [-mark X|O]")

func main() {
	playFlag := flag.Bool("play", false, "play a game against the engine")
	markFlag := flag.String("mark", "X", "mark of the human player in -play mode")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var err error
	switch {
	case *playFlag:
		err = play(logger, os.Stdin, os.Stdout, entity.Mark(strings.ToUpper(*markFlag)))
	case flag.NArg() == 1:
		err = solve(logger, os.Stdout, flag.Arg(0))
	default:
		err = errUsage
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// solve - prints the side to move, the best action and the board after it.
func solve(logger *slog.Logger, out io.Writer, text string) error {
	board, err := tictactoe.ParseValidBoard(text)
	if err != nil {
		return err
	}

	if tictactoe.Terminal(board) {
		fmt.Fprintf(out, "%s\n\nresult: %s\n", board.Render(), describeResult(board))
		return nil
	}

	mover := tictactoe.Player(board)
	action, _ := minimax.BestAction(board)
	logger.Debug("best action found", "board", board.String(), "player", mover, "action", action.String())

	next, err := tictactoe.Result(board, action)
	if err != nil {
		return fmt.Errorf("failed to apply best action: %w", err)
	}

	fmt.Fprintf(out, "to move: %s\nbest: %s\n\n%s\n", mover, action, next.Render())
	if tictactoe.Terminal(next) {
		fmt.Fprintf(out, "\nresult: %s\n", describeResult(next))
	}

	return nil
}

// play - runs a console game. The human enters moves as "row col".
func play(logger *slog.Logger, in io.Reader, out io.Writer, human entity.Mark) error {
	if !human.IsPlayer() {
		return fmt.Errorf("invalid mark %q: %w", human, errUsage)
	}

	scanner := bufio.NewScanner(in)
	board := entity.InitialState()

	for !tictactoe.Terminal(board) {
		var action entity.Action

		if tictactoe.Player(board) == human {
			fmt.Fprintf(out, "%s\n\nyour move (row col): ", board.Render())

			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read move: %w", err)
				}
				return io.ErrUnexpectedEOF
			}

			parsed, err := parseAction(scanner.Text())
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			action = parsed
		} else {
			action, _ = minimax.BestAction(board)
			fmt.Fprintf(out, "engine plays %s\n", action)
		}

		next, err := tictactoe.Result(board, action)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		logger.Debug("move played", "action", action.String(), "board", next.String())
		board = next
	}

	fmt.Fprintf(out, "%s\n\nresult: %s\n", board.Render(), describeResult(board))

	return nil
}

func parseAction(line string) (entity.Action, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return entity.Action{}, fmt.Errorf("expected two numbers, got %q", line)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Action{}, fmt.Errorf("bad row %q", fields[0])
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Action{}, fmt.Errorf("bad column %q", fields[1])
	}

	return entity.Action{Row: row, Col: col}, nil
}

func describeResult(board entity.Board) string {
	if winner := tictactoe.Winner(board); winner != entity.EmptyCell {
		return string(winner) + " wins"
	}

	return "draw"
}
