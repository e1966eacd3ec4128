package service

import (
	"github.com/rocketscienceinc/tictactoe-scores/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
)

type BotService interface {
	SelectMove(board entity.Board) (int, error)
}

// botService always takes the lowest free cell. It is deliberately not a real opponent.
type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

func (that *botService) SelectMove(board entity.Board) (int, error) {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return -1, apperror.ErrNoAvailableMoves
	}

	return empty[0], nil
}
