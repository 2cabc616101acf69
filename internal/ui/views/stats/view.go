package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	reportdto "studyroutine/internal/modules/report/dto"
	"studyroutine/internal/ui/components"
	"studyroutine/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	MonthCompletion(ctx context.Context, month string) (reportdto.RateOutput, error)
	Summary(ctx context.Context) (reportdto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Month   reportdto.RateOutput
	Summary reportdto.SummaryOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	month    string
	data     LoadedMsg
	loaded   bool
	viewport viewport.Model
	width    int
}

func New(port Port) Model {
	return Model{port: port, viewport: viewport.New(0, 0)}
}

// SetMonth picks the month shown at the top and reloads.
func (m *Model) SetMonth(month string) tea.Cmd {
	m.month = month
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	month := m.month
	return func() tea.Msg {
		ctx := context.Background()
		var out LoadedMsg
		if month != "" {
			if out.Month, out.Err = m.port.MonthCompletion(ctx, month); out.Err != nil {
				return out
			}
		}
		out.Summary, out.Err = m.port.Summary(ctx)
		return out
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		if m.loaded {
			m.viewport.SetContent(m.render())
		}
	case LoadedMsg:
		m.data = msg
		m.loaded = true
		m.viewport.SetContent(m.render())
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string { return m.viewport.View() }

func (m Model) render() string {
	if m.data.Err != nil {
		return theme.Error.Render(m.data.Err.Error())
	}
	barW := m.width - 36
	if barW > 40 {
		barW = 40
	}
	s := m.data.Summary

	var sb strings.Builder
	if m.month != "" {
		r := m.data.Month
		sb.WriteString(theme.Title.Render(fmt.Sprintf("📈 %s 완료율", m.month)) + "  ")
		sb.WriteString(theme.Rate(r.Percent).Render(fmt.Sprintf("%.1f%%", r.Percent)))
		sb.WriteString(theme.Muted.Render(fmt.Sprintf(" (%d/%d)", r.Done, r.Total)) + "\n\n")
	}
	sb.WriteString(components.Bar("전체", s.Overall.Percent, s.Overall.Done, s.Overall.Total, barW) + "\n\n")

	sb.WriteString(theme.Title.Render("과목별 진도") + theme.Muted.Render("  (낮은 순)") + "\n")
	for _, r := range s.Subjects {
		sb.WriteString(components.Bar(r.Key, r.Percent, r.Done, r.Total, barW) + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("월별 진도") + "\n")
	for _, r := range s.Months {
		line := components.Bar(r.Key, r.Percent, r.Done, r.Total, barW)
		if r.Key == m.month {
			line = theme.Selected.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
