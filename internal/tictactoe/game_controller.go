package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-scores/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scores/internal/render"
)

type bot interface {
	SelectMove(board entity.Board) (int, error)
}

// Result is the outcome of a transition: the next state and what has to be redrawn.
// Outcome is empty unless the transition ended the round.
type Result struct {
	Game    entity.Game
	Events  []render.Event
	Outcome entity.Outcome
}

func (that Result) IsTerminal() bool {
	return that.Outcome != ""
}

// GameController holds no game state; every method takes the current game and returns the next one.
type GameController struct {
	bot bot
}

func NewGameController(bot bot) *GameController {
	return &GameController{
		bot: bot,
	}
}

func (that *GameController) NewGame(mode entity.GameMode) Result {
	game := entity.NewGame(mode)

	return Result{
		Game:   game,
		Events: render.Snapshot(game),
	}
}

// MakeTurn places the current mark at cell for a human player. In single-player mode the bot
// answers inside the same transition, so a non-terminal result always hands the turn back to X.
func (that *GameController) MakeTurn(game entity.Game, cell int) (Result, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return Result{Game: game}, err
	}

	if game.IsBotTurn() {
		return Result{Game: game}, apperror.ErrNotYourTurn
	}

	result, err := placeMark(game, game.Turn, cell)
	if err != nil {
		return Result{Game: game}, fmt.Errorf("invalid turn: %w", err)
	}

	if result.IsTerminal() || !result.Game.IsBotTurn() {
		return result, nil
	}

	return that.botTurn(result), nil
}

// botTurn plays for O. With no free cell left the previous result is returned unchanged.
func (that *GameController) botTurn(previous Result) Result {
	cell, err := that.bot.SelectMove(previous.Game.Board)
	if err != nil {
		return previous
	}

	result, err := placeMark(previous.Game, previous.Game.Turn, cell)
	if err != nil {
		return previous
	}

	result.Events = append(previous.Events, result.Events...)

	return result
}

// Reset starts a new round in the same mode. Scores are not touched.
func (that *GameController) Reset(game entity.Game) Result {
	next := entity.NewGame(game.Mode)

	return Result{
		Game:   next,
		Events: append(render.Board(next), render.Status(next)),
	}
}

// ToggleMode switches mode and always discards the round in progress.
func (that *GameController) ToggleMode(game entity.Game) Result {
	game.Mode = game.Mode.Toggle()

	result := that.Reset(game)
	result.Events = append([]render.Event{render.Mode(game.Mode)}, result.Events...)

	return result
}

// placeMark applies one move and evaluates it: win for mark first, then a draw, then the turn flips.
func placeMark(game entity.Game, mark entity.Mark, cell int) (Result, error) {
	if err := game.Board.Place(cell, mark); err != nil {
		return Result{}, err
	}

	events := []render.Event{render.Cell(game, cell)}

	if line, won := game.Board.CheckWinner(mark); won {
		outcome, err := entity.OutcomeForMark(mark)
		if err != nil {
			return Result{}, err
		}

		game.Status = entity.StatusWon
		game.Winner = mark
		game.WinningLine = slices.Clone(line[:])

		events = append(events, render.Highlight(game)...)
		events = append(events, render.Status(game))

		return Result{Game: game, Events: events, Outcome: outcome}, nil
	}

	if game.Board.IsDraw() {
		game.Status = entity.StatusDraw
		events = append(events, render.Status(game))

		return Result{Game: game, Events: events, Outcome: entity.OutcomeDraw}, nil
	}

	game.Turn = mark.Opponent()
	events = append(events, render.Status(game))

	return Result{Game: game, Events: events}, nil
}
