package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyroutine/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// Command is one palette entry. Name is the first word the dashboard
// dispatches on.
type Command struct {
	Name  string
	Usage string
	Help  string
}

// Commands lists what app.Model.executePalette understands.
var Commands = []Command{
	{Name: "month", Usage: "month <YYYY-MM>", Help: "해당 월로 이동"},
	{Name: "today", Usage: "today", Help: "이번 주 루틴으로 이동"},
	{Name: "focus", Usage: "focus [text]", Help: "중점 관리 항목 (빈 값이면 지움)"},
	{Name: "export", Usage: "export [full]", Help: "CSV 내보내기"},
	{Name: "note", Usage: "note", Help: "월간 노트 작성"},
	{Name: "reload", Usage: "reload", Help: "파일 다시 읽기"},
}

const historySize = 20

var (
	paletteFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle = lipgloss.NewStyle().Foreground(theme.Lavender)
	helpStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Palette is the ":" command line. tab completes the command name and
// up/down walk earlier submissions.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "command"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Value() string { return p.input.Value() }

// Matches returns the commands whose name starts with the first word typed.
func (p Palette) Matches() []Command {
	word, _, _ := strings.Cut(strings.TrimLeft(strings.ToLower(p.input.Value()), " "), " ")
	var out []Command
	for _, c := range Commands {
		if strings.HasPrefix(c.Name, word) {
			out = append(out, c)
		}
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.close()
			p.remember(line)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case "tab":
			p.complete()
			return p, nil
		case "up":
			p.step(-1)
			return p, nil
		case "down":
			p.step(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(line string) {
	if line == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == line {
		return
	}
	p.history = append(p.history, line)
	if len(p.history) > historySize {
		p.history = p.history[len(p.history)-historySize:]
	}
}

// complete fills in the command name when exactly one command matches
// and no argument has been typed yet.
func (p *Palette) complete() {
	if strings.Contains(strings.TrimSpace(p.input.Value()), " ") {
		return
	}
	if m := p.Matches(); len(m) == 1 {
		p.input.SetValue(m[0].Name + " ")
		p.input.CursorEnd()
	}
}

func (p *Palette) step(delta int) {
	if len(p.history) == 0 {
		return
	}
	p.recall = min(max(p.recall+delta, 0), len(p.history))
	if p.recall == len(p.history) {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.history[p.recall])
	p.input.CursorEnd()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	lines := []string{theme.Title.Render("Command Palette"), p.input.View(), ""}
	for _, c := range p.Matches() {
		lines = append(lines, "  "+usageStyle.Render(c.Usage)+"  "+helpStyle.Render(c.Help))
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteFrame.Width(w - 2).Render(strings.Join(lines, "\n"))
}
