package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type botService interface {
	MakeTurn(game *entity.Game) error
}

// GameManager runs games between a human player and the engine.
type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	bot        botService
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "gameManager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		bot:        bot,
	}
}

// GetOrCreatePlayer - returns the player with the id, or a new one when id is empty.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.getPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return player, nil
}

// GetPlayer - returns an existing player without creating one.
func (that *GameManager) GetPlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return nil, apperror.ErrMissingPlayerID
	}

	return that.getPlayerByID(ctx, id)
}

// GetOrCreateGame - returns the player's ongoing game, or starts a new one
// where the player takes the given mark and the engine the other. When the
// engine plays X it makes the first move right away.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string, mark entity.Mark) (*entity.Game, error) {
	if !mark.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID != "" {
		existingGame, err := that.getGameByID(ctx, player.GameID)
		switch {
		case err == nil && existingGame.IsOngoing():
			return existingGame, nil
		case err != nil && !errors.Is(err, apperror.ErrGameNotFound):
			return nil, err
		}
	}

	game, err := that.createGame(ctx, player, mark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

// GetGame - returns a game by id.
func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	return that.getGameByID(ctx, id)
}

// MakeTurn - plays the player's action and, unless that ends the game, the
// engine's reply.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, action entity.Action) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "playerID", playerID)

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrPlayerNotInGame
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if err = tictactoe.MakeTurn(game, player.Mark, action); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if !game.IsFinished() {
		if err = that.bot.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "gameID", game.ID, "winner", game.Winner)
		that.releasePlayer(ctx, player)
	}

	return game, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player, mark entity.Mark) (*entity.Game, error) {
	gameID := pkg.GenerateGameID()

	player.GameID = gameID
	player.Mark = mark
	botPlayer := entity.NewBotPlayer(gameID, mark.Opponent())

	newGame := entity.NewGame(gameID)
	newGame.Status = entity.StatusOngoing
	newGame.Players = []*entity.Player{player, botPlayer}

	if botPlayer.Mark == entity.PlayerX {
		if err := that.bot.MakeTurn(newGame); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	if err := that.updateGame(ctx, newGame); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "gameID", gameID, "playerID", player.ID, "mark", mark)

	return newGame, nil
}

// releasePlayer - frees the player for a new game once the current one is over.
func (that *GameManager) releasePlayer(ctx context.Context, player *entity.Player) {
	log := that.logger.With("method", "releasePlayer")

	player.GameID = ""
	player.Mark = entity.EmptyCell

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		log.Error("failed to update player", "playerID", player.ID, "error", err)
	}
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
