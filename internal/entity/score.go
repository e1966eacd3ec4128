package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-scores/internal/apperror"
)

// Outcome is how a round ended. Its string form matches the persisted score fields.
type Outcome string

const (
	OutcomeX    Outcome = "X"
	OutcomeO    Outcome = "O"
	OutcomeDraw Outcome = "draw"
)

func OutcomeForMark(mark Mark) (Outcome, error) {
	switch mark {
	case PlayerX:
		return OutcomeX, nil
	case PlayerO:
		return OutcomeO, nil
	default:
		return "", fmt.Errorf("%w: mark %q", apperror.ErrUnknownOutcome, mark)
	}
}

func (that Outcome) IsValid() bool {
	switch that {
	case OutcomeX, OutcomeO, OutcomeDraw:
		return true
	default:
		return false
	}
}

// Scores is one set of counters keyed by outcome.
type Scores struct {
	X    int `json:"X"`
	O    int `json:"O"`
	Draw int `json:"draw"`
}

func (that Scores) Get(outcome Outcome) int {
	switch outcome {
	case OutcomeX:
		return that.X
	case OutcomeO:
		return that.O
	case OutcomeDraw:
		return that.Draw
	default:
		return 0
	}
}

func (that *Scores) Set(outcome Outcome, value int) {
	switch outcome {
	case OutcomeX:
		that.X = value
	case OutcomeO:
		that.O = value
	case OutcomeDraw:
		that.Draw = value
	}
}

// ScoreBoard pairs the session counters with the all-time high scores.
type ScoreBoard struct {
	Session Scores `json:"scores"`
	High    Scores `json:"highScores"`
}
