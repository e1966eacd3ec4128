package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-scores/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scores/internal/render"
	"github.com/rocketscienceinc/tictactoe-scores/internal/tictactoe"
)

type gameController interface {
	NewGame(mode entity.GameMode) tictactoe.Result
	MakeTurn(game entity.Game, cell int) (tictactoe.Result, error)
	Reset(game entity.Game) tictactoe.Result
	ToggleMode(game entity.Game) tictactoe.Result
}

type scoreLedger interface {
	LoadOnStartup(ctx context.Context) entity.ScoreBoard
	RecordOutcome(ctx context.Context, outcome entity.Outcome) (entity.ScoreBoard, error)
	ResetSession(ctx context.Context) (entity.ScoreBoard, error)
}

// GameSession is one player's table: the round in progress and its score ledger.
// It is not safe for concurrent use; every transport drives a session from a single goroutine.
type GameSession struct {
	logger     *slog.Logger
	controller gameController
	ledger     scoreLedger

	game   entity.Game
	scores entity.ScoreBoard
}

func NewGameSession(logger *slog.Logger, controller gameController, ledger scoreLedger) *GameSession {
	return &GameSession{
		logger:     logger.With("component", "gameSession"),
		controller: controller,
		ledger:     ledger,
		game:       controller.NewGame(entity.TwoPlayer).Game,
	}
}

// Start loads the persisted scores and returns a full redraw.
func (that *GameSession) Start(ctx context.Context) []render.Event {
	that.scores = that.ledger.LoadOnStartup(ctx)

	return that.Snapshot()
}

func (that *GameSession) Snapshot() []render.Event {
	events := render.Snapshot(that.game)
	return append(events, render.Scores(that.scores))
}

// ClickCell plays cell for the human to move. Rejected clicks change nothing and draw nothing.
func (that *GameSession) ClickCell(ctx context.Context, cell int) []render.Event {
	log := that.logger.With("method", "ClickCell", "cell", cell)

	result, err := that.controller.MakeTurn(that.game, cell)
	if err != nil {
		log.Debug("move ignored", "error", err)
		return nil
	}

	that.game = result.Game
	events := result.Events

	if result.IsTerminal() {
		events = append(events, that.recordOutcome(ctx, result.Outcome))
	}

	return events
}

func (that *GameSession) Reset(_ context.Context) []render.Event {
	result := that.controller.Reset(that.game)
	that.game = result.Game

	return result.Events
}

func (that *GameSession) ToggleMode(_ context.Context) []render.Event {
	result := that.controller.ToggleMode(that.game)
	that.game = result.Game

	that.logger.Debug("mode toggled", "mode", that.game.Mode)

	return result.Events
}

// ResetScores clears the session counters and keeps the high scores.
func (that *GameSession) ResetScores(ctx context.Context) []render.Event {
	scores, err := that.ledger.ResetSession(ctx)
	if err != nil {
		that.logger.Error("failed to reset scores", "error", err)
	}

	that.scores = scores

	return []render.Event{render.Scores(that.scores)}
}

func (that *GameSession) Game() entity.Game {
	return that.game
}

func (that *GameSession) Scores() entity.ScoreBoard {
	return that.scores
}

func (that *GameSession) recordOutcome(ctx context.Context, outcome entity.Outcome) render.Event {
	log := that.logger.With("method", "recordOutcome", "outcome", outcome)

	scores, err := that.ledger.RecordOutcome(ctx, outcome)
	if errors.Is(err, apperror.ErrUnknownOutcome) {
		log.Error("outcome not recorded", "error", err)
		return render.Scores(that.scores)
	}

	if err != nil {
		log.Error("failed to record outcome", "error", err)
	}

	that.scores = scores
	log.Info("round finished")

	return render.Scores(that.scores)
}
