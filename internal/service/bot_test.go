package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGameWithBot(t *testing.T, board string, botMark entity.Mark) *entity.Game {
	t.Helper()

	parsed, err := tictactoe.ParseBoard(board)
	require.NoError(t, err)

	game := &entity.Game{
		ID:     "g1",
		Board:  parsed,
		Status: entity.StatusOngoing,
		Turn:   tictactoe.Player(parsed),
		Players: []*entity.Player{
			{ID: "p1", Mark: botMark.Opponent(), GameID: "g1"},
			entity.NewBotPlayer("g1", botMark),
		},
	}

	return game
}

func TestBotService_MakeTurn(t *testing.T) {
	bot := NewBotService(slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("Bot takes the winning cell", func(t *testing.T) {
		// Given: O (the bot) can complete the bottom row
		game := newGameWithBot(t, ".X.X.X.OO", entity.PlayerO)

		// When: the bot moves
		err := bot.MakeTurn(game)

		// Then: it wins
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, game.Board[2][0])
		assert.Equal(t, string(entity.PlayerO), game.Winner)
		assert.True(t, game.IsFinished())
	})

	t.Run("Bot blocks", func(t *testing.T) {
		// Given: X (the bot) must stop O's top row
		game := newGameWithBot(t, "OO.X...X.", entity.PlayerX)

		// When: the bot moves
		require.NoError(t, bot.MakeTurn(game))

		// Then: the block is played and O is to move
		assert.Equal(t, entity.PlayerX, game.Board[0][2])
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("No moves on a finished board", func(t *testing.T) {
		game := newGameWithBot(t, "XXOOOXXXO", entity.PlayerO)

		err := bot.MakeTurn(game)

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})

	t.Run("Game without bot", func(t *testing.T) {
		game := &entity.Game{Status: entity.StatusOngoing, Turn: entity.PlayerX}

		err := bot.MakeTurn(game)

		require.ErrorIs(t, err, ErrBotNotFound)
	})

	t.Run("Not the bot's turn", func(t *testing.T) {
		// Given: the board says X moves but the bot plays O
		game := newGameWithBot(t, ".........", entity.PlayerO)

		// When: the bot is asked to move
		err := bot.MakeTurn(game)

		// Then: the turn check rejects it
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}
