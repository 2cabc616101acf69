package month

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	scheduledto "studyroutine/internal/modules/schedule/dto"
	"studyroutine/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	MonthWeeks(ctx context.Context, month string) ([]scheduledto.WeekOutput, error)
	SetDone(ctx context.Context, index int, done bool) (scheduledto.WeekOutput, error)
	UpdateWeek(ctx context.Context, input scheduledto.UpdateWeekInput) (scheduledto.WeekOutput, error)
	Subjects(ctx context.Context) ([]string, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type WeeksLoadedMsg struct {
	Month    string
	Weeks    []scheduledto.WeekOutput
	Subjects []string
	Err      error
}

// WeekSavedMsg reports the outcome of any write from this tab. The app
// model turns it into a status line and refreshes dependent tabs.
type WeekSavedMsg struct {
	Week   scheduledto.WeekOutput
	Action string
	Err    error
}

// MonthChangedMsg is emitted after `[` or `]`.
type MonthChangedMsg struct{ Month string }

// ─── model ───────────────────────────────────────────────────────────────────

type field int

const (
	fieldNone field = iota
	fieldPlan
	fieldQuestion
)

type Model struct {
	port     Port
	months   []string
	month    string
	weeks    []scheduledto.WeekOutput
	subjects []string
	cursor   int
	editing  field
	editor   textarea.Model
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.Placeholder = "markdown…"
	return Model{port: port, editor: ta}
}

// SetMonths installs the month list and opens month (or the first month).
func (m *Model) SetMonths(months []string, month string) tea.Cmd {
	m.months = months
	if month == "" && len(months) > 0 {
		month = months[0]
	}
	return m.Open(month)
}

// Open loads a month. The cursor resets to the first week.
func (m *Model) Open(month string) tea.Cmd {
	if month != m.month {
		m.cursor = 0
	}
	m.month = month
	return m.loadCmd(month)
}

// Reload re-reads the current month, keeping the cursor.
func (m Model) Reload() tea.Cmd {
	if m.month == "" {
		return nil
	}
	return m.loadCmd(m.month)
}

func (m Model) Month() string { return m.month }

// Editing reports whether a textarea owns the keyboard.
func (m Model) Editing() bool { return m.editing != fieldNone }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width/2-6, 20))
		m.editor.SetHeight(max(msg.Height/2, 5))

	case WeeksLoadedMsg:
		if msg.Month != m.month {
			return m, nil
		}
		m.err = msg.Err
		if msg.Err != nil {
			m.weeks = nil
			return m, nil
		}
		m.weeks = msg.Weeks
		if msg.Subjects != nil {
			m.subjects = msg.Subjects
		}
		if m.cursor >= len(m.weeks) {
			m.cursor = max(len(m.weeks)-1, 0)
		}

	case WeekSavedMsg:
		if msg.Err == nil {
			m.replace(msg.Week)
		}

	case tea.KeyMsg:
		if m.editing != fieldNone {
			return m.updateEditor(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.weeks)-1 {
			m.cursor++
		}
	case "[":
		return m.shiftMonth(-1)
	case "]":
		return m.shiftMonth(1)
	case " ":
		if w, ok := m.selected(); ok {
			return m, m.setDoneCmd(w.Index, !w.Done)
		}
	case "s":
		if w, ok := m.selected(); ok && len(m.subjects) > 0 {
			next := nextSubject(m.subjects, w.Subject)
			return m, m.updateCmd(scheduledto.UpdateWeekInput{Index: w.Index, Subject: &next}, "subject → "+next)
		}
	case "p":
		return m.startEdit(fieldPlan)
	case "a":
		return m.startEdit(fieldQuestion)
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = fieldNone
		m.editor.Blur()
		return m, nil
	case "ctrl+s":
		w, ok := m.selected()
		if !ok {
			m.editing = fieldNone
			return m, nil
		}
		text := m.editor.Value()
		input := scheduledto.UpdateWeekInput{Index: w.Index}
		action := "plan saved"
		if m.editing == fieldPlan {
			input.PlanText = &text
		} else {
			input.SampleQuestion = &text
			action = "question saved"
		}
		m.editing = fieldNone
		m.editor.Blur()
		return m, m.updateCmd(input, action)
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) startEdit(f field) (Model, tea.Cmd) {
	w, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.editing = f
	if f == fieldPlan {
		m.editor.SetValue(w.PlanText)
	} else {
		m.editor.SetValue(w.SampleQuestion)
	}
	return m, m.editor.Focus()
}

func (m Model) shiftMonth(delta int) (Model, tea.Cmd) {
	i := indexOf(m.months, m.month) + delta
	if i < 0 || i >= len(m.months) {
		return m, nil
	}
	month := m.months[i]
	cmd := m.Open(month)
	return m, tea.Batch(cmd, func() tea.Msg { return MonthChangedMsg{Month: month} })
}

func (m Model) View() string {
	header := theme.Title.Render("📅 "+m.month) + theme.Muted.Render(fmt.Sprintf("  %s", m.progress()))
	if m.err != nil {
		return header + "\n\n" + theme.Error.Render(m.err.Error())
	}
	if len(m.weeks) == 0 {
		return header + "\n\n" + theme.Muted.Render("no active routine")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW - 2

	var rows strings.Builder
	for i, w := range m.weeks {
		mark := theme.Pending.Render("[ ]")
		if w.Done {
			mark = theme.Done.Render("[x]")
		}
		line := fmt.Sprintf("%s %s  %s", mark, w.WeekLabel, w.Subject)
		if i == m.cursor {
			line = theme.Selected.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		rows.WriteString(line + "\n")
	}
	rows.WriteString("\n" + theme.Muted.Render("[/]: month  space: done  s: subject\np: plan  a: question"))

	listPane := lipgloss.NewStyle().Width(listW).Render(rows.String())
	detailPane := theme.Pane.Width(max(detailW-2, 10)).Render(m.renderDetail())
	return lipgloss.JoinVertical(lipgloss.Left, header, "",
		lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane))
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderDetail() string {
	w, ok := m.selected()
	if !ok {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("#%d %s %s", w.Index, w.Month, w.WeekLabel)) + "\n")
	sb.WriteString(theme.Muted.Render("과목:   ") + w.Subject + "\n")
	sb.WriteString(theme.Muted.Render("시작일: ") + w.StartDate + "\n\n")

	switch m.editing {
	case fieldPlan:
		sb.WriteString(theme.Hot.Render("세부 계획 편집") + theme.Muted.Render("  ctrl+s: save  esc: cancel") + "\n")
		sb.WriteString(m.editor.View())
		return sb.String()
	case fieldQuestion:
		sb.WriteString(theme.Hot.Render("Gemini 질문 예시 편집") + theme.Muted.Render("  ctrl+s: save  esc: cancel") + "\n")
		sb.WriteString(m.editor.View())
		return sb.String()
	}
	sb.WriteString(theme.Title.Render("세부 계획") + "\n")
	sb.WriteString(orMuted(w.PlanText) + "\n\n")
	sb.WriteString(theme.Title.Render("Gemini 질문 예시") + "\n")
	sb.WriteString(orMuted(w.SampleQuestion))
	return sb.String()
}

func (m Model) progress() string {
	done := 0
	for _, w := range m.weeks {
		if w.Done {
			done++
		}
	}
	return fmt.Sprintf("%d/%d 완료", done, len(m.weeks))
}

func (m Model) selected() (scheduledto.WeekOutput, bool) {
	if m.cursor < 0 || m.cursor >= len(m.weeks) {
		return scheduledto.WeekOutput{}, false
	}
	return m.weeks[m.cursor], true
}

func (m *Model) replace(week scheduledto.WeekOutput) {
	for i := range m.weeks {
		if m.weeks[i].Index == week.Index {
			m.weeks[i] = week
			return
		}
	}
}

func (m Model) loadCmd(month string) tea.Cmd {
	needSubjects := m.subjects == nil
	return func() tea.Msg {
		ctx := context.Background()
		weeks, err := m.port.MonthWeeks(ctx, month)
		if err != nil {
			return WeeksLoadedMsg{Month: month, Err: err}
		}
		var subjects []string
		if needSubjects {
			if subjects, err = m.port.Subjects(ctx); err != nil {
				return WeeksLoadedMsg{Month: month, Err: err}
			}
		}
		return WeeksLoadedMsg{Month: month, Weeks: weeks, Subjects: subjects}
	}
}

func (m Model) setDoneCmd(index int, done bool) tea.Cmd {
	return func() tea.Msg {
		week, err := m.port.SetDone(context.Background(), index, done)
		action := "marked undone"
		if done {
			action = "marked done"
		}
		return WeekSavedMsg{Week: week, Action: action, Err: err}
	}
}

func (m Model) updateCmd(input scheduledto.UpdateWeekInput, action string) tea.Cmd {
	return func() tea.Msg {
		week, err := m.port.UpdateWeek(context.Background(), input)
		return WeekSavedMsg{Week: week, Action: action, Err: err}
	}
}

func nextSubject(subjects []string, current string) string {
	i := indexOf(subjects, current)
	return subjects[(i+1)%len(subjects)]
}

func indexOf(items []string, s string) int {
	for i, it := range items {
		if it == s {
			return i
		}
	}
	return -1
}

func orMuted(text string) string {
	if strings.TrimSpace(text) == "" {
		return theme.Muted.Render("(비어 있음)")
	}
	return text
}
