package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame("123")

	// Then: it waits for players with an empty board and X to move
	expectedGame := &Game{
		ID:     "123",
		Board:  Board{},
		Turn:   PlayerX,
		Status: StatusWaiting,
	}

	require.Equal(t, expectedGame, game)
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should report finished only
		assert.True(t, game.IsFinished())
		assert.False(t, game.IsOngoing())
		assert.False(t, game.IsWaiting())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		// Given: a game with StatusOngoing
		game := &Game{Status: StatusOngoing}

		// Then: it should report ongoing
		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		// Given: a game with StatusWaiting
		game := &Game{Status: StatusWaiting}

		// Then: it should report waiting
		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		// Given: a game with unknown status
		game := &Game{Status: "unknown"}

		// When: checking if the game is active
		err := game.ConfirmOngoingState()

		// Then: it should return an error
		require.ErrorIs(t, err, ErrUnknownGameStatus)
		assert.Contains(t, err.Error(), "unknown")
	})
}

func TestGame_BotPlayer(t *testing.T) {
	t.Run("Finds the engine seat", func(t *testing.T) {
		// Given: a game with a human and a bot
		human := &Player{ID: "p1", Mark: PlayerX, GameID: "g1"}
		bot := NewBotPlayer("g1", PlayerO)
		game := &Game{ID: "g1", Players: []*Player{human, bot}}

		// When: looking up the bot
		found := game.BotPlayer()

		// Then: the bot seat is returned
		require.NotNil(t, found)
		assert.Equal(t, "bot:g1", found.ID)
		assert.Equal(t, PlayerO, found.Mark)
		assert.False(t, human.IsBot())
	})

	t.Run("Returns nil without a bot", func(t *testing.T) {
		game := &Game{Players: []*Player{{ID: "p1"}}}

		assert.Nil(t, game.BotPlayer())
	})
}
