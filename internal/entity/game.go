package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-scores/internal/apperror"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type GameMode string

const (
	TwoPlayer    GameMode = "two-player"
	SinglePlayer GameMode = "single-player"
)

// Toggle switches between the two modes. Unknown modes fall back to TwoPlayer.
func (that GameMode) Toggle() GameMode {
	if that == TwoPlayer {
		return SinglePlayer
	}
	return TwoPlayer
}

func (that GameMode) IsValid() bool {
	return that == TwoPlayer || that == SinglePlayer
}

type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusDraw    Status = "draw"
)

// Game is the state of a single round. Winner and WinningLine are set only when Status is StatusWon.
type Game struct {
	Board       Board    `json:"board"`
	Turn        Mark     `json:"player_turn"`
	Mode        GameMode `json:"mode"`
	Status      Status   `json:"status"`
	Winner      Mark     `json:"winner"`
	WinningLine []int    `json:"winning_line,omitempty"`
}

func NewGame(mode GameMode) Game {
	if !mode.IsValid() {
		mode = TwoPlayer
	}

	return Game{
		Board:  Board{},
		Turn:   PlayerX,
		Mode:   mode,
		Status: StatusOngoing,
	}
}

func (that Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsBotTurn is true when the mark to move belongs to the bot seat.
func (that Game) IsBotTurn() bool {
	return that.Mode == SinglePlayer && that.Turn == PlayerO
}

func (that Game) IsWinningCell(cell int) bool {
	for _, idx := range that.WinningLine {
		if idx == cell {
			return true
		}
	}
	return false
}

func (that Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
