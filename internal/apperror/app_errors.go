package apperror

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidBoard     = errors.New("invalid board")
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrGameNotFound     = errors.New("game not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrMissingPlayerID  = errors.New("player id is required")
	ErrInvalidMark      = errors.New("invalid player mark")
	ErrPlayerNotInGame  = errors.New("player is not in a game")
)
