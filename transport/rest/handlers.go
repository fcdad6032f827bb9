package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

// maxBodyBytes caps request bodies; every request here is a few short fields.
const maxBodyBytes = 4 << 10

var errTerminalBoard = errors.New("board is terminal")

type gameManager interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetPlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateGame(ctx context.Context, playerID string, mark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, action entity.Action) (*entity.Game, error)
}

type boardRequest struct {
	Board string `json:"board"`
}

type solveResponse struct {
	Player entity.Mark   `json:"player"`
	Action entity.Action `json:"action"`
	Board  string        `json:"board"`
	Result string        `json:"result,omitempty"`
}

type analyzeResponse struct {
	Player entity.Mark            `json:"player"`
	Moves  []minimax.ScoredAction `json:"moves"`
}

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

type newGameRequest struct {
	PlayerID string      `json:"player_id"`
	Mark     entity.Mark `json:"mark"`
}

type turnRequest struct {
	PlayerID string `json:"player_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers serves the solver and the human-versus-engine games over HTTP.
type Handlers struct {
	logger *slog.Logger

	games          gameManager
	analyzeWorkers int
}

func NewHandlers(logger *slog.Logger, games gameManager, analyzeWorkers int) *Handlers {
	return &Handlers{
		logger:         logger.With("component", "rest"),
		games:          games,
		analyzeWorkers: analyzeWorkers,
	}
}

// Routes - registers every endpoint on a new mux.
func (that *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.Ping)
	mux.HandleFunc("POST /solve", that.Solve)
	mux.HandleFunc("POST /analyze", that.Analyze)
	mux.HandleFunc("POST /players", that.CreatePlayer)
	mux.HandleFunc("POST /games", that.CreateGame)
	mux.HandleFunc("GET /games/{id}", that.GetGame)
	mux.HandleFunc("POST /games/{id}/turn", that.MakeTurn)

	return mux
}

// Solve - answers with the optimal action for the side to move.
func (that *Handlers) Solve(w http.ResponseWriter, r *http.Request) {
	board, ok := that.readBoard(w, r)
	if !ok {
		return
	}

	action, ok := minimax.BestAction(board)
	if !ok {
		that.writeError(w, "Solve", errTerminalBoard)
		return
	}

	next, err := tictactoe.Result(board, action)
	if err != nil {
		that.writeError(w, "Solve", err)
		return
	}

	that.writeJSON(w, http.StatusOK, solveResponse{
		Player: tictactoe.Player(board),
		Action: action,
		Board:  next.String(),
		Result: tictactoe.GameResult(next),
	})
}

// Analyze - answers with every legal action scored, best first.
func (that *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	board, ok := that.readBoard(w, r)
	if !ok {
		return
	}

	moves, err := minimax.Analyze(r.Context(), board, that.analyzeWorkers)
	if err != nil {
		that.writeError(w, "Analyze", err)
		return
	}

	that.writeJSON(w, http.StatusOK, analyzeResponse{
		Player: tictactoe.Player(board),
		Moves:  moves,
	})
}

func (that *Handlers) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if r.ContentLength != 0 && !that.decode(w, r, &req) {
		return
	}

	player, err := that.games.GetOrCreatePlayer(r.Context(), req.PlayerID)
	if err != nil {
		that.writeError(w, "CreatePlayer", err)
		return
	}

	that.writeJSON(w, http.StatusOK, player)
}

func (that *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if !that.decode(w, r, &req) {
		return
	}

	if req.PlayerID == "" {
		that.writeError(w, "CreateGame", apperror.ErrMissingPlayerID)
		return
	}

	if req.Mark == entity.EmptyCell {
		req.Mark = entity.PlayerX
	}

	game, err := that.games.GetOrCreateGame(r.Context(), req.PlayerID, req.Mark)
	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if !that.decode(w, r, &req) {
		return
	}

	if req.PlayerID == "" {
		that.writeError(w, "MakeTurn", apperror.ErrMissingPlayerID)
		return
	}

	player, err := that.games.GetPlayer(r.Context(), req.PlayerID)
	if err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	if player.GameID != r.PathValue("id") {
		that.writeError(w, "MakeTurn", apperror.ErrPlayerNotInGame)
		return
	}

	game, err := that.games.MakeTurn(r.Context(), player.ID, entity.Action{Row: req.Row, Col: req.Col})
	if err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Handlers) readBoard(w http.ResponseWriter, r *http.Request) (entity.Board, bool) {
	var req boardRequest
	if !that.decode(w, r, &req) {
		return entity.Board{}, false
	}

	board, err := tictactoe.ParseValidBoard(req.Board)
	if err != nil {
		that.writeError(w, "readBoard", err)
		return entity.Board{}, false
	}

	if tictactoe.Terminal(board) {
		that.writeError(w, "readBoard", fmt.Errorf("%w: %s", errTerminalBoard, tictactoe.GameResult(board)))
		return entity.Board{}, false
	}

	return board, true
}

func (that *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}

	return true
}

func (that *Handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	} else {
		that.logger.Debug("request rejected", "method", method, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrMissingPlayerID),
		errors.Is(err, apperror.ErrInvalidMark):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, apperror.ErrPlayerNotInGame):
		return http.StatusConflict
	case errors.Is(err, errTerminalBoard):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
