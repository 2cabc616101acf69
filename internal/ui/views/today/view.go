package today

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	goalsdto "studyroutine/internal/modules/goals/dto"
	scheduledto "studyroutine/internal/modules/schedule/dto"
	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/ui/theme"
	"studyroutine/internal/widget"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Today(ctx context.Context) (scheduledto.WeekOutput, error)
	GetGoal(ctx context.Context, month string) (goalsdto.GoalOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Week scheduledto.WeekOutput
	Goal string
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the widget-only dashboard: the current week rendered as
// markdown through glamour.
type Model struct {
	port     Port
	viewport viewport.Model
	renderer *glamour.TermRenderer
	loaded   LoadedMsg
	ready    bool
	width    int
}

func New(port Port) Model {
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{port: port, viewport: viewport.New(0, 0), renderer: r}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		week, err := m.port.Today(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		goal, err := m.port.GetGoal(ctx, week.Month)
		return LoadedMsg{Week: week, Goal: goal.Text, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		// Rebuild the renderer so glamour wraps at the new width.
		if r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(msg.Width),
		); err == nil {
			m.renderer = r
		}
		if m.ready {
			m.viewport.SetContent(m.render())
		}
	case LoadedMsg:
		m.loaded = msg
		m.ready = true
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string { return m.viewport.View() }

func (m Model) render() string {
	if err := m.loaded.Err; err != nil {
		if errors.Is(err, apperrors.ErrNoActiveWeek) {
			return theme.Muted.Render(widget.NoActiveRoutine)
		}
		return theme.Error.Render(err.Error())
	}
	card := widget.Today(m.loaded.Week, m.loaded.Goal)
	if m.renderer != nil {
		if out, err := m.renderer.Render(card); err == nil {
			return out
		}
	}
	return card
}
