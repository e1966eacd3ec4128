// Package render describes what a display surface has to draw after a game transition.
package render

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
)

type Kind string

const (
	KindCell   Kind = "cell"
	KindStatus Kind = "status"
	KindMode   Kind = "mode"
	KindScores Kind = "scores"
)

const (
	ClassNone   = ""
	ClassWinner = "winner"
	ClassDraw   = "draw"
)

// Event is a single instruction for a display surface.
type Event interface {
	Kind() Kind
}

type CellEvent struct {
	Index    int         `json:"index"`
	Mark     entity.Mark `json:"mark"`
	Occupied bool        `json:"occupied"`
	Winning  bool        `json:"winning"`
}

func (CellEvent) Kind() Kind { return KindCell }

type StatusEvent struct {
	Message string `json:"message"`
	Class   string `json:"class"`
}

func (StatusEvent) Kind() Kind { return KindStatus }

type ModeEvent struct {
	Mode  entity.GameMode `json:"mode"`
	Label string          `json:"label"`
}

func (ModeEvent) Kind() Kind { return KindMode }

type ScoresEvent struct {
	Scores entity.ScoreBoard `json:"scores"`
}

func (ScoresEvent) Kind() Kind { return KindScores }

func Cell(game entity.Game, index int) CellEvent {
	mark := game.Board[index]
	return CellEvent{
		Index:    index,
		Mark:     mark,
		Occupied: mark != entity.EmptyCell,
		Winning:  game.IsWinningCell(index),
	}
}

// Board redraws all nine cells, clearing stale highlights.
func Board(game entity.Game) []Event {
	events := make([]Event, 0, len(game.Board))
	for i := range game.Board {
		events = append(events, Cell(game, i))
	}
	return events
}

// Highlight marks the cells of the winning line.
func Highlight(game entity.Game) []Event {
	events := make([]Event, 0, len(game.WinningLine))
	for _, i := range game.WinningLine {
		events = append(events, Cell(game, i))
	}
	return events
}

func Status(game entity.Game) StatusEvent {
	switch game.Status {
	case entity.StatusWon:
		return StatusEvent{Message: fmt.Sprintf("Player %s Wins!", game.Winner), Class: ClassWinner}
	case entity.StatusDraw:
		return StatusEvent{Message: "It's a Draw!", Class: ClassDraw}
	default:
		return StatusEvent{Message: fmt.Sprintf("Player %s's Turn", game.Turn), Class: ClassNone}
	}
}

// Mode labels the toggle with the mode it would switch to.
func Mode(mode entity.GameMode) ModeEvent {
	label := "Switch to Single Player Mode"
	if mode == entity.SinglePlayer {
		label = "Switch to Two Player Mode"
	}
	return ModeEvent{Mode: mode, Label: label}
}

func Scores(scores entity.ScoreBoard) ScoresEvent {
	return ScoresEvent{Scores: scores}
}

// Snapshot is everything needed to draw game from scratch.
func Snapshot(game entity.Game) []Event {
	events := Board(game)
	events = append(events, Status(game), Mode(game.Mode))
	return events
}
