// Package tui is a terminal display surface for a game session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scores/internal/render"
)

type GameSession interface {
	Start(ctx context.Context) []render.Event
	ClickCell(ctx context.Context, cell int) []render.Event
	Reset(ctx context.Context) []render.Event
	ToggleMode(ctx context.Context) []render.Event
	ResetScores(ctx context.Context) []render.Event
}

var (
	xStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007e50ff", Dark: "#6afd76ff"}).Render
	oStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0003adff", Dark: "#5f61fcff"}).Render
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#960000ff", Dark: "#fc7e7eff"}).Render
	winningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#bb0000ff", Dark: "#df1010ff"}).Render
	bracketStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#414141ff", Dark: "#8f8f8fff"}).Render
	winnerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#8a880fff", Dark: "#ddda1dff"}).Render
	helpStyle    = lipgloss.NewStyle().Faint(true).Render
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const helpText = "1-9 or arrows+enter: play  r: new round  m: switch mode  c: clear scores  q: quit"

// Model is a bubbletea model. It keeps only what the render events told it and forwards keys to
// the session.
type Model struct {
	ctx     context.Context
	session GameSession

	cursor int
	cells  [9]render.CellEvent
	status render.StatusEvent
	mode   render.ModeEvent
	scores entity.ScoreBoard
}

func New(ctx context.Context, session GameSession) *Model {
	m := &Model{
		ctx:     ctx,
		session: session,
	}

	for i := range m.cells {
		m.cells[i].Index = i
	}

	render.Apply(m, session.Start(ctx))

	return m
}

func (m *Model) RenderCell(event render.CellEvent) {
	if event.Index < 0 || event.Index >= len(m.cells) {
		return
	}
	m.cells[event.Index] = event
}

func (m *Model) RenderStatus(event render.StatusEvent) {
	m.status = event
}

func (m *Model) RenderMode(event render.ModeEvent) {
	m.mode = event
}

func (m *Model) RenderScores(event render.ScoresEvent) {
	m.scores = event.Scores
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up":
		if m.cursor >= 3 {
			m.cursor -= 3
		}
	case "down":
		if m.cursor < 6 {
			m.cursor += 3
		}
	case "left":
		if m.cursor%3 > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor%3 < 2 {
			m.cursor++
		}
	case "enter", " ":
		render.Apply(m, m.session.ClickCell(m.ctx, m.cursor))
	case "r":
		render.Apply(m, m.session.Reset(m.ctx))
	case "m":
		render.Apply(m, m.session.ToggleMode(m.ctx))
	case "c":
		render.Apply(m, m.session.ResetScores(m.ctx))
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.cursor = int(key[0] - '1')
			render.Apply(m, m.session.ClickCell(m.ctx, m.cursor))
		}
	}

	return m, nil
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.statusLine())
	s.WriteString("\n\n")

	for i, cell := range m.cells {
		s.WriteString(m.cellView(i, cell))
		if (i+1)%3 == 0 {
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(panelStyle.Render(m.scoresView()))
	s.WriteString("\n")
	s.WriteString(helpStyle(fmt.Sprintf("[%s]  %s", m.mode.Label, helpText)))
	s.WriteString("\n")

	return s.String()
}

func (m *Model) statusLine() string {
	if m.status.Class == render.ClassNone {
		return m.status.Message
	}
	return winnerStyle(m.status.Message)
}

func (m *Model) cellView(i int, cell render.CellEvent) string {
	mark := " "
	switch cell.Mark {
	case entity.PlayerX:
		mark = xStyle(string(cell.Mark))
	case entity.PlayerO:
		mark = oStyle(string(cell.Mark))
	default:
		if m.cursor == i {
			mark = cursorStyle("*")
		}
	}

	bStyle := bracketStyle
	if cell.Winning {
		bStyle = winningStyle
	} else if m.cursor == i {
		bStyle = cursorStyle
	}

	return bStyle("[") + mark + bStyle("]")
}

func (m *Model) scoresView() string {
	session, high := m.scores.Session, m.scores.High

	return fmt.Sprintf(
		"         X    O  Draw\nScore %4d %4d %5d\nBest  %4d %4d %5d",
		session.X, session.O, session.Draw,
		high.X, high.O, high.Draw,
	)
}

// Run blocks until the player quits or ctx is cancelled.
func Run(ctx context.Context, session GameSession) error {
	p := tea.NewProgram(New(ctx, session), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal game failed: %w", err)
	}

	return nil
}
