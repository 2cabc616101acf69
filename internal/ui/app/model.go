package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goalsdto "studyroutine/internal/modules/goals/dto"
	reportdto "studyroutine/internal/modules/report/dto"
	scheduledto "studyroutine/internal/modules/schedule/dto"
	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/ui/components"
	"studyroutine/internal/ui/theme"
	goalview "studyroutine/internal/ui/views/goal"
	monthview "studyroutine/internal/ui/views/month"
	remindersview "studyroutine/internal/ui/views/reminders"
	statsview "studyroutine/internal/ui/views/stats"
	todayview "studyroutine/internal/ui/views/today"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages.

type schedulePort interface {
	monthview.Port
	remindersview.Port
	ListMonths(ctx context.Context) ([]string, error)
	Today(ctx context.Context) (scheduledto.WeekOutput, error)
	Reload(ctx context.Context) error
}

type goalsPort interface {
	goalview.Port
}

type reportPort interface {
	statsview.Port
	Export(ctx context.Context, input reportdto.ExportInput) (reportdto.ExportOutput, error)
	MonthNote(ctx context.Context, input reportdto.MonthNoteInput) (reportdto.MonthNoteOutput, error)
}

// Mode selects the full dashboard or the widget-only card.
type Mode string

const (
	ModeFull  Mode = "full"
	ModeToday Mode = "today"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFull:
		return ModeFull, nil
	case ModeToday:
		return ModeToday, nil
	}
	return "", fmt.Errorf("%w: unknown tui mode %q (want full or today)", apperrors.ErrInvalidInput, s)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabMonth tabID = iota
	tabReminders
	tabStats
	tabGoal
	tabCount
)

var tabLabels = [tabCount]string{
	"Month", "Reminders", "Stats", "Goal",
}

// ─── async messages ──────────────────────────────────────────────────────────

type monthsLoadedMsg struct {
	months  []string
	current string
	err     error
}

type exportedMsg struct {
	out reportdto.ExportOutput
	err error
}

type notedMsg struct {
	out reportdto.MonthNoteOutput
	err error
}

type reloadedMsg struct{ err error }

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Month    key.Binding
	Toggle   key.Binding
	Subject  key.Binding
	Plan     key.Binding
	Question key.Binding
	Save     key.Binding
	Cancel   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Month:    key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "prev/next month")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Subject:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle subject")),
		Plan:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "edit plan")),
		Question: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "edit question")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel edit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Month, k.Toggle},
		{k.Subject, k.Plan, k.Question},
		{k.Save, k.Cancel},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help
// overlay, the command palette and the status bar. Writes go through
// the ports; rendering is delegated to sub-views.
type Model struct {
	mode      Mode
	exportDir string

	schedule schedulePort
	report   reportPort

	monthView     monthview.Model
	remindersView remindersview.Model
	statsView     statsview.Model
	goalView      goalview.Model
	todayView     todayview.Model

	months    []string
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	statusErr bool
	focus     string // 중점 관리 항목, kept for the session only
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel builds the dashboard. exportDir receives `export` and `note`
// output from the palette.
func NewModel(mode Mode, exportDir string, schedule schedulePort, goals goalsPort, report reportPort) Model {
	return Model{
		mode:          mode,
		exportDir:     exportDir,
		schedule:      schedule,
		report:        report,
		monthView:     monthview.New(schedule),
		remindersView: remindersview.New(schedule),
		statsView:     statsview.New(report),
		goalView:      goalview.New(goals),
		todayView:     todayview.New(todayPortBridge{schedule: schedule, goals: goals}),
		activeTab:     tabMonth,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	if m.mode == ModeToday {
		return m.todayView.Init()
	}
	return tea.Batch(m.loadMonthsCmd(), m.remindersView.Init())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == ModeToday {
		return m.updateWidget(msg)
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case monthsLoadedMsg:
		if msg.err != nil {
			m.setError("load routine", msg.err)
			return m, nil
		}
		m.months = msg.months
		cmds = append(cmds,
			m.monthView.SetMonths(msg.months, msg.current),
			m.statsView.SetMonth(msg.current),
			m.goalView.SetMonth(msg.current),
		)
		return m, tea.Batch(cmds...)

	case monthview.WeeksLoadedMsg:
		if msg.Err != nil {
			m.setError("load month", msg.Err)
		}
		m.monthView, _ = m.monthView.Update(msg)
		return m, nil

	case monthview.WeekSavedMsg:
		if msg.Err != nil {
			m.setError("save week", msg.Err)
			return m, m.monthView.Reload()
		}
		m.setStatus(fmt.Sprintf("#%d %s", msg.Week.Index, msg.Action))
		m.monthView, _ = m.monthView.Update(msg)
		return m, tea.Batch(m.remindersView.Reload(), m.statsView.Reload())

	case monthview.MonthChangedMsg:
		return m, tea.Batch(m.statsView.SetMonth(msg.Month), m.goalView.SetMonth(msg.Month))

	case remindersview.LoadedMsg:
		if msg.Err != nil {
			m.setError("load reminders", msg.Err)
		}
		var cmd tea.Cmd
		m.remindersView, cmd = m.remindersView.Update(msg)
		return m, cmd

	case remindersview.DoneMsg:
		if msg.Err != nil {
			m.setError("mark done", msg.Err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("#%d marked done", msg.Week.Index))
		var cmd tea.Cmd
		m.remindersView, cmd = m.remindersView.Update(msg)
		return m, tea.Batch(cmd, m.monthView.Reload(), m.statsView.Reload())

	case statsview.LoadedMsg:
		m.statsView, _ = m.statsView.Update(msg)
		return m, nil

	case goalview.LoadedMsg:
		m.goalView, _ = m.goalView.Update(msg)
		return m, nil

	case goalview.SavedMsg:
		if msg.Err != nil {
			m.setError("save goal", msg.Err)
		} else {
			m.setStatus("goal saved for " + msg.Goal.Month)
		}
		m.goalView, _ = m.goalView.Update(msg)
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.setError("export", msg.err)
		} else {
			m.setStatus(fmt.Sprintf("exported %d rows → %s", msg.out.Rows, msg.out.Path))
		}
		return m, nil

	case notedMsg:
		if msg.err != nil {
			m.setError("note", msg.err)
		} else {
			m.setStatus("note written → " + msg.out.Path)
		}
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			m.setError("reload", msg.err)
			return m, nil
		}
		m.setStatus("reloaded from disk")
		return m, tea.Batch(m.monthView.Reload(), m.remindersView.Reload(), m.statsView.Reload())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.setStatus("ready")
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	// Anything else (cursor blink, viewport ticks) goes to the active tab.
	return m.forwardToActive(msg)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	// Editors and filters own the keyboard; only tab switching escapes the goal editor.
	switch {
	case m.activeTab == tabMonth && m.monthView.Editing(),
		m.activeTab == tabReminders && m.remindersView.Filtering():
		return m.forwardToActive(msg)
	case m.activeTab == tabGoal:
		switch msg.String() {
		case "tab", "shift+tab", "esc":
		default:
			return m.forwardToActive(msg)
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		return m.switchTab((m.activeTab + 1) % tabCount)
	case "shift+tab":
		return m.switchTab((m.activeTab + tabCount - 1) % tabCount)
	case "esc":
		if m.activeTab == tabGoal {
			return m.switchTab(tabMonth)
		}
		return m, nil
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case ":":
		return m, m.palette.Open()
	}
	return m.forwardToActive(msg)
}

func (m Model) updateWidget(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		sz := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2}
		m.todayView, _ = m.todayView.Update(sz)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			return m, m.todayView.Reload()
		}
	}
	var cmd tea.Cmd
	m.todayView, cmd = m.todayView.Update(msg)
	return m, cmd
}

func (m Model) forwardToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabMonth:
		m.monthView, cmd = m.monthView.Update(msg)
	case tabReminders:
		m.remindersView, cmd = m.remindersView.Update(msg)
	case tabStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case tabGoal:
		m.goalView, cmd = m.goalView.Update(msg)
	}
	return m, cmd
}

func (m Model) switchTab(tab tabID) (tea.Model, tea.Cmd) {
	m.goalView.Blur()
	m.activeTab = tab
	if tab == tabGoal {
		return m, m.goalView.Focus()
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.mode == ModeToday {
		footer := theme.Muted.Render("r: reload  q: quit")
		return lipgloss.JoinVertical(lipgloss.Left, m.todayView.View(), footer)
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabMonth:
		return m.monthView.View()
	case tabReminders:
		return m.remindersView.View()
	case tabStats:
		return m.statsView.View()
	case tabGoal:
		return m.goalView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == tabReminders && m.remindersView.Count() > 0 {
			label = fmt.Sprintf("%s (%d)", label, m.remindersView.Count())
		}
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "📚 studyroutine  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.statusErr {
		left = theme.Error.Render(left)
	}
	if m.focus != "" {
		left += theme.Muted.Render("  │  ") + theme.Hot.Render("중점: "+m.focus)
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "month":
		if len(parts) < 2 {
			m.setStatus("usage: month <YYYY-MM>")
			return m, nil
		}
		month := parts[1]
		if !slices.Contains(m.months, month) {
			m.setError("month", fmt.Errorf("%s: no active routine", month))
			return m, nil
		}
		m.activeTab = tabMonth
		m.goalView.Blur()
		return m, tea.Batch(m.monthView.Open(month), m.statsView.SetMonth(month), m.goalView.SetMonth(month))

	case "today":
		return m, m.jumpToTodayCmd()

	case "focus":
		m.focus = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "focus"))
		if m.focus == "" {
			m.setStatus("focus cleared")
		} else {
			m.setStatus("focus set")
		}
		return m, nil

	case "export":
		full := len(parts) > 1 && parts[1] == "full"
		return m, m.exportCmd(full)

	case "note":
		return m, m.noteCmd(m.monthView.Month())

	case "reload":
		return m, m.reloadCmd()

	default:
		m.setError("palette", fmt.Errorf("unknown command: %s", parts[0]))
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(action string, err error) {
	m.status = action + ": " + err.Error()
	m.statusErr = true
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.monthView, _ = m.monthView.Update(sz)
	m.remindersView, _ = m.remindersView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
	m.goalView, _ = m.goalView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

// loadMonthsCmd opens the month of today's week, or the first month
// before the routine starts.
func (m Model) loadMonthsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		months, err := m.schedule.ListMonths(ctx)
		if err != nil {
			return monthsLoadedMsg{err: err}
		}
		current := ""
		if len(months) > 0 {
			current = months[0]
		}
		week, err := m.schedule.Today(ctx)
		switch {
		case err == nil:
			current = week.Month
		case !errors.Is(err, apperrors.ErrNoActiveWeek):
			return monthsLoadedMsg{err: err}
		}
		return monthsLoadedMsg{months: months, current: current}
	}
}

func (m Model) jumpToTodayCmd() tea.Cmd {
	return func() tea.Msg {
		week, err := m.schedule.Today(context.Background())
		if err != nil {
			return components.PaletteSubmitMsg{Input: "month " + firstOr(m.months, "")}
		}
		return components.PaletteSubmitMsg{Input: "month " + week.Month}
	}
}

func (m Model) exportCmd(full bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.report.Export(context.Background(), reportdto.ExportInput{Full: full, Dir: m.exportDir})
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) noteCmd(month string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.report.MonthNote(context.Background(), reportdto.MonthNoteInput{Month: month, Dir: m.exportDir})
		return notedMsg{out: out, err: err}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		return reloadedMsg{err: m.schedule.Reload(context.Background())}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────

// todayPortBridge joins the two ports the widget needs.
type todayPortBridge struct {
	schedule schedulePort
	goals    goalsPort
}

func (b todayPortBridge) Today(ctx context.Context) (scheduledto.WeekOutput, error) {
	return b.schedule.Today(ctx)
}

func (b todayPortBridge) GetGoal(ctx context.Context, month string) (goalsdto.GoalOutput, error) {
	return b.goals.GetGoal(ctx, month)
}

func firstOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return items[0]
}
