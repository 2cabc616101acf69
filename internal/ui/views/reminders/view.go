package reminders

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	scheduledto "studyroutine/internal/modules/schedule/dto"
	"studyroutine/internal/ui/theme"
	"studyroutine/internal/widget"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Reminders(ctx context.Context) ([]scheduledto.WeekOutput, error)
	SetDone(ctx context.Context, index int, done bool) (scheduledto.WeekOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Weeks []scheduledto.WeekOutput
	Err   error
}

// DoneMsg reports a week marked done from this tab.
type DoneMsg struct {
	Week scheduledto.WeekOutput
	Err  error
}

// ─── list item ───────────────────────────────────────────────────────────────

type weekItem struct {
	week scheduledto.WeekOutput
}

func (i weekItem) Title() string {
	return fmt.Sprintf("📅 %s %s  📝 %s", i.week.Month, i.week.WeekLabel, i.week.Subject)
}
func (i weekItem) Description() string {
	if i.week.PlanText == "" {
		return "(세부 계획 없음)"
	}
	return i.week.PlanText
}
func (i weekItem) FilterValue() string { return widget.Reminder(i.week) }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   Port
	list   list.Model
	count  int
	err    error
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "🔔 미완료 루틴"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		weeks, err := m.port.Reminders(context.Background())
		return LoadedMsg{Weeks: weeks, Err: err}
	}
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Count() int { return m.count }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.count = len(msg.Weeks)
		items := make([]list.Item, len(msg.Weeks))
		for i, w := range msg.Weeks {
			items[i] = weekItem{week: w}
		}
		return m, m.list.SetItems(items)

	case DoneMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		return m, m.Reload()

	case tea.KeyMsg:
		if msg.String() == " " && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(weekItem); ok {
				return m, m.doneCmd(item.week.Index)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Error.Render(m.err.Error())
	}
	if m.count == 0 {
		return theme.Done.Render(widget.AllDone)
	}
	return m.list.View() + "\n" + theme.Muted.Render("space: mark done  /: filter")
}

func (m Model) doneCmd(index int) tea.Cmd {
	return func() tea.Msg {
		week, err := m.port.SetDone(context.Background(), index, true)
		return DoneMsg{Week: week, Err: err}
	}
}
