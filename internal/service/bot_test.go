package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-scores/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
)

func TestBotService_SelectMove(t *testing.T) {
	bot := NewBotService()

	tests := []struct {
		name  string
		board entity.Board
		want  int
	}{
		{name: "empty board", board: entity.Board{}, want: 0},
		{name: "first cell taken", board: entity.Board{entity.PlayerX}, want: 1},
		{
			name:  "skips to the first gap",
			board: entity.Board{entity.PlayerX, entity.PlayerO, entity.PlayerX, entity.PlayerO, entity.EmptyCell, entity.PlayerX},
			want:  4,
		},
		{
			name: "last cell",
			board: entity.Board{
				entity.PlayerX, entity.PlayerO, entity.PlayerX,
				entity.PlayerX, entity.PlayerO, entity.PlayerO,
				entity.PlayerO, entity.PlayerX,
			},
			want: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, err := bot.SelectMove(tt.board)

			require.NoError(t, err)
			assert.Equal(t, tt.want, cell)
		})
	}

	t.Run("Error on full board", func(t *testing.T) {
		full := entity.Board{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerX, entity.PlayerO, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
		}

		cell, err := bot.SelectMove(full)

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
		assert.Equal(t, -1, cell)
	})
}
