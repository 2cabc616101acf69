package goal

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	goalsdto "studyroutine/internal/modules/goals/dto"
	"studyroutine/internal/ui/theme"
)

type Port interface {
	GetGoal(ctx context.Context, month string) (goalsdto.GoalOutput, error)
	SetGoal(ctx context.Context, input goalsdto.SetGoalInput) (goalsdto.GoalOutput, error)
}

type LoadedMsg struct {
	Goal goalsdto.GoalOutput
	Err  error
}

type SavedMsg struct {
	Goal goalsdto.GoalOutput
	Err  error
}

// Model edits the goal of the month selected on the Month tab. The
// textarea is always focused while the tab is active.
type Model struct {
	port   Port
	month  string
	editor textarea.Model
	dirty  bool
	err    error
}

func New(port Port) Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.Placeholder = "이 달의 목표를 적어 보세요…"
	return Model{port: port, editor: ta}
}

// SetMonth switches the editor to month. Unsaved text of the previous
// month is written before the next goal is loaded.
func (m *Model) SetMonth(month string) tea.Cmd {
	var flush tea.Cmd
	if m.dirty && m.month != "" && m.month != month {
		flush = m.save()
	}
	m.month = month
	m.dirty = false
	return tea.Batch(flush, m.load())
}

func (m Model) Month() string { return m.month }

func (m Model) Dirty() bool { return m.dirty }

func (m *Model) Focus() tea.Cmd { return m.editor.Focus() }

func (m *Model) Blur() { m.editor.Blur() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetWidth(max(msg.Width-4, 20))
		m.editor.SetHeight(max(msg.Height-6, 3))
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil && msg.Goal.Month == m.month {
			m.editor.SetValue(msg.Goal.Text)
			m.dirty = false
		}
		return m, nil

	case SavedMsg:
		m.err = msg.Err
		if msg.Err == nil && msg.Goal.Month == m.month {
			m.dirty = false
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			return m, m.save()
		}
		var cmd tea.Cmd
		before := m.editor.Value()
		m.editor, cmd = m.editor.Update(msg)
		if m.editor.Value() != before {
			m.dirty = true
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render("🎯 " + m.month + " 목표")
	if m.dirty {
		header += theme.Hot.Render("  ●")
	}
	footer := theme.Muted.Render("ctrl+s: save  tab: next tab")
	if m.err != nil {
		footer = theme.Error.Render(m.err.Error())
	}
	return header + "\n\n" + m.editor.View() + "\n\n" + footer
}

func (m Model) load() tea.Cmd {
	month := m.month
	return func() tea.Msg {
		goal, err := m.port.GetGoal(context.Background(), month)
		return LoadedMsg{Goal: goal, Err: err}
	}
}

func (m Model) save() tea.Cmd {
	input := goalsdto.SetGoalInput{Month: m.month, Text: m.editor.Value()}
	return func() tea.Msg {
		goal, err := m.port.SetGoal(context.Background(), input)
		return SavedMsg{Goal: goal, Err: err}
	}
}
