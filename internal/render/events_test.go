package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
)

type recordingSurface struct {
	calls []string
	cells []CellEvent
	last  StatusEvent
	mode  ModeEvent
	board entity.ScoreBoard
}

func (that *recordingSurface) RenderCell(event CellEvent) {
	that.calls = append(that.calls, "cell")
	that.cells = append(that.cells, event)
}

func (that *recordingSurface) RenderStatus(event StatusEvent) {
	that.calls = append(that.calls, "status")
	that.last = event
}

func (that *recordingSurface) RenderMode(event ModeEvent) {
	that.calls = append(that.calls, "mode")
	that.mode = event
}

func (that *recordingSurface) RenderScores(event ScoresEvent) {
	that.calls = append(that.calls, "scores")
	that.board = event.Scores
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		game entity.Game
		want StatusEvent
	}{
		{
			name: "X to move",
			game: entity.NewGame(entity.TwoPlayer),
			want: StatusEvent{Message: "Player X's Turn", Class: ClassNone},
		},
		{
			name: "O to move",
			game: entity.Game{Turn: entity.PlayerO, Status: entity.StatusOngoing},
			want: StatusEvent{Message: "Player O's Turn", Class: ClassNone},
		},
		{
			name: "O won",
			game: entity.Game{Turn: entity.PlayerO, Status: entity.StatusWon, Winner: entity.PlayerO},
			want: StatusEvent{Message: "Player O Wins!", Class: ClassWinner},
		},
		{
			name: "draw",
			game: entity.Game{Turn: entity.PlayerX, Status: entity.StatusDraw},
			want: StatusEvent{Message: "It's a Draw!", Class: ClassDraw},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.game))
		})
	}
}

func TestMode(t *testing.T) {
	assert.Equal(t, "Switch to Single Player Mode", Mode(entity.TwoPlayer).Label)
	assert.Equal(t, "Switch to Two Player Mode", Mode(entity.SinglePlayer).Label)
}

func TestHighlight(t *testing.T) {
	// Given: X owns the anti-diagonal
	game := entity.NewGame(entity.TwoPlayer)
	game.Board = entity.Board{"", "", entity.PlayerX, "", entity.PlayerX, "", entity.PlayerX}
	game.Status = entity.StatusWon
	game.Winner = entity.PlayerX
	game.WinningLine = []int{2, 4, 6}

	// When: the highlight is built
	events := Highlight(game)

	// Then: exactly the line cells are marked winning
	require.Len(t, events, 3)
	for i, index := range []int{2, 4, 6} {
		assert.Equal(t, CellEvent{Index: index, Mark: entity.PlayerX, Occupied: true, Winning: true}, events[i])
	}

	for _, event := range Board(game) {
		cell := event.(CellEvent)
		assert.Equal(t, game.IsWinningCell(cell.Index), cell.Winning, "cell %d", cell.Index)
	}
}

func TestApply(t *testing.T) {
	// Given: a full redraw followed by scores
	game := entity.NewGame(entity.SinglePlayer)
	scores := entity.ScoreBoard{Session: entity.Scores{X: 1}, High: entity.Scores{X: 4}}
	events := append(Snapshot(game), Scores(scores))

	// When: it is applied to a surface
	surface := &recordingSurface{}
	Apply(surface, events)

	// Then: every event reaches the matching method in order
	require.Len(t, surface.calls, 12)
	assert.Equal(t, []string{"status", "mode", "scores"}, surface.calls[9:])
	assert.Len(t, surface.cells, 9)
	assert.Equal(t, "Player X's Turn", surface.last.Message)
	assert.Equal(t, entity.SinglePlayer, surface.mode.Mode)
	assert.Equal(t, scores, surface.board)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindCell, CellEvent{}.Kind())
	assert.Equal(t, KindStatus, StatusEvent{}.Kind())
	assert.Equal(t, KindMode, ModeEvent{}.Kind())
	assert.Equal(t, KindScores, ScoresEvent{}.Kind())
}
