package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	goalsdto "studyroutine/internal/modules/goals/dto"
	goalsin "studyroutine/internal/modules/goals/port/in"
	reportin "studyroutine/internal/modules/report/port/in"
	scheduledto "studyroutine/internal/modules/schedule/dto"
	schedulein "studyroutine/internal/modules/schedule/port/in"
	"studyroutine/internal/widget"
)

// ─── TodayTool ───────────────────────────────────────────────────────────────

type TodayTool struct {
	schedule schedulein.Usecase
	goals    goalsin.Usecase
}

func NewTodayTool(schedule schedulein.Usecase, goals goalsin.Usecase) *TodayTool {
	return &TodayTool{schedule: schedule, goals: goals}
}

func (t *TodayTool) Definition() mcp.Tool {
	return mcp.NewTool("routine_today",
		mcp.WithDescription("Show the study week in progress today: subject, plan, sample question and completion."),
	)
}

func (t *TodayTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := t.schedule.Today(ctx)
	if err != nil {
		return toolError("load today", err), nil
	}
	goal, err := t.goals.GetGoal(ctx, week.Month)
	if err != nil {
		return toolError("load goal", err), nil
	}
	return mcp.NewToolResultText(widget.Today(week, goal.Text)), nil
}

// ─── MonthTool ───────────────────────────────────────────────────────────────

type MonthTool struct {
	schedule schedulein.Usecase
	report   reportin.Usecase
}

func NewMonthTool(schedule schedulein.Usecase, report reportin.Usecase) *MonthTool {
	return &MonthTool{schedule: schedule, report: report}
}

func (t *MonthTool) Definition() mcp.Tool {
	return mcp.NewTool("routine_month",
		mcp.WithDescription("List the weeks of one month with their index, subject, plan and done flag."),
		mcp.WithString("month",
			mcp.Required(),
			mcp.Description("Month in YYYY-MM form, e.g. 2025-06"),
		),
	)
}

func (t *MonthTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	month := req.GetString("month", "")
	if month == "" {
		return mcp.NewToolResultError("'month' is required"), nil
	}
	weeks, err := t.schedule.MonthWeeks(ctx, month)
	if err != nil {
		return toolError("load month", err), nil
	}
	if len(weeks) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("%s: %s", month, widget.NoActiveRoutine)), nil
	}
	rate, err := t.report.MonthCompletion(ctx, month)
	if err != nil {
		return toolError("load completion", err), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s (완료율 %.1f%%)\n\n", month, rate.Percent)
	for _, w := range weeks {
		writeWeekLine(&sb, w)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── RemindersTool ───────────────────────────────────────────────────────────

type RemindersTool struct {
	schedule schedulein.Usecase
}

func NewRemindersTool(schedule schedulein.Usecase) *RemindersTool {
	return &RemindersTool{schedule: schedule}
}

func (t *RemindersTool) Definition() mcp.Tool {
	return mcp.NewTool("routine_reminders",
		mcp.WithDescription("List every week not yet marked done, oldest first."),
		mcp.WithNumber("limit",
			mcp.Description("Max weeks to list (default: all)"),
		),
	)
}

func (t *RemindersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weeks, err := t.schedule.Reminders(ctx)
	if err != nil {
		return toolError("load reminders", err), nil
	}
	if len(weeks) == 0 {
		return mcp.NewToolResultText(widget.AllDone), nil
	}
	total := len(weeks)
	if limit, ok := intArg(req, "limit"); ok && limit > 0 && limit < len(weeks) {
		weeks = weeks[:limit]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "## 미완료 루틴 (%d)\n\n", total)
	for _, w := range weeks {
		fmt.Fprintf(&sb, "- #%d %s\n", w.Index, widget.Reminder(w))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── SetDoneTool ─────────────────────────────────────────────────────────────

type SetDoneTool struct {
	schedule schedulein.Usecase
}

func NewSetDoneTool(schedule schedulein.Usecase) *SetDoneTool {
	return &SetDoneTool{schedule: schedule}
}

func (t *SetDoneTool) Definition() mcp.Tool {
	return mcp.NewTool("routine_set_done",
		mcp.WithDescription("Mark a week done or not done. The change is saved immediately."),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Week index (0-based, as shown by routine_month)"),
		),
		mcp.WithBoolean("done",
			mcp.Description("Completion flag (default: true)"),
		),
	)
}

func (t *SetDoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, ok := intArg(req, "index")
	if !ok {
		return mcp.NewToolResultError("'index' is required"), nil
	}
	done, ok := boolArg(req, "done")
	if !ok {
		done = true
	}
	week, err := t.schedule.SetDone(ctx, index, done)
	if err != nil {
		return toolError("update week", err), nil
	}
	state := "not done"
	if week.Done {
		state = "done"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Week #%d (%s %s, %s) marked %s", week.Index, week.Month, week.WeekLabel, week.Subject, state)), nil
}

// ─── UpdateWeekTool ──────────────────────────────────────────────────────────

type UpdateWeekTool struct {
	schedule schedulein.Usecase
}

func NewUpdateWeekTool(schedule schedulein.Usecase) *UpdateWeekTool {
	return &UpdateWeekTool{schedule: schedule}
}

func (t *UpdateWeekTool) Definition() mcp.Tool {
	return mcp.NewTool("routine_update_week",
		mcp.WithDescription("Edit one week. Only the fields given are changed."),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Week index (0-based)"),
		),
		mcp.WithString("subject",
			mcp.Description("One of the configured subjects"),
		),
		mcp.WithString("plan_text",
			mcp.Description("Detailed plan for the week (markdown allowed)"),
		),
		mcp.WithString("sample_question",
			mcp.Description("Sample question to practise with"),
		),
		mcp.WithBoolean("done",
			mcp.Description("Completion flag"),
		),
	)
}

func (t *UpdateWeekTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, ok := intArg(req, "index")
	if !ok {
		return mcp.NewToolResultError("'index' is required"), nil
	}
	input := scheduledto.UpdateWeekInput{Index: index}
	input.Subject, _ = stringArg(req, "subject")
	input.PlanText, _ = stringArg(req, "plan_text")
	input.SampleQuestion, _ = stringArg(req, "sample_question")
	if done, ok := boolArg(req, "done"); ok {
		input.Done = &done
	}
	if input.Subject == nil && input.PlanText == nil && input.SampleQuestion == nil && input.Done == nil {
		return mcp.NewToolResultError("nothing to update: pass subject, plan_text, sample_question or done"), nil
	}
	week, err := t.schedule.UpdateWeek(ctx, input)
	if err != nil {
		return toolError("update week", err), nil
	}
	var sb strings.Builder
	sb.WriteString("Week updated:\n")
	writeWeekLine(&sb, week)
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── StatsTool ───────────────────────────────────────────────────────────────

type StatsTool struct {
	report reportin.Usecase
}

func NewStatsTool(report reportin.Usecase) *StatsTool {
	return &StatsTool{report: report}
}

func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("routine_stats",
		mcp.WithDescription("Completion statistics: one month, or overall with per-month and per-subject rates."),
		mcp.WithString("month",
			mcp.Description("Optional month in YYYY-MM form"),
		),
	)
}

func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if month := req.GetString("month", ""); month != "" {
		rate, err := t.report.MonthCompletion(ctx, month)
		if err != nil {
			return toolError("compute completion", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s 완료율: %.1f%% (%d/%d)", month, rate.Percent, rate.Done, rate.Total)), nil
	}
	summary, err := t.report.Summary(ctx)
	if err != nil {
		return toolError("compute stats", err), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "## 전체 진도: %.1f%% (%d/%d)\n\n### 과목별\n\n", summary.Overall.Percent, summary.Overall.Done, summary.Overall.Total)
	for _, r := range summary.Subjects {
		fmt.Fprintf(&sb, "- %s: %.1f%% 완료\n", r.Key, r.Percent)
	}
	sb.WriteString("\n### 월별\n\n")
	for _, r := range summary.Months {
		fmt.Fprintf(&sb, "- %s: %.1f%% (%d/%d)\n", r.Key, r.Percent, r.Done, r.Total)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── GoalGetTool ─────────────────────────────────────────────────────────────

type GoalGetTool struct {
	goals goalsin.Usecase
}

func NewGoalGetTool(goals goalsin.Usecase) *GoalGetTool {
	return &GoalGetTool{goals: goals}
}

func (t *GoalGetTool) Definition() mcp.Tool {
	return mcp.NewTool("routine_goal_get",
		mcp.WithDescription("Read the goal written for a month."),
		mcp.WithString("month",
			mcp.Required(),
			mcp.Description("Month in YYYY-MM form"),
		),
	)
}

func (t *GoalGetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	month := req.GetString("month", "")
	if month == "" {
		return mcp.NewToolResultError("'month' is required"), nil
	}
	goal, err := t.goals.GetGoal(ctx, month)
	if err != nil {
		return toolError("load goal", err), nil
	}
	if strings.TrimSpace(goal.Text) == "" {
		return mcp.NewToolResultText(fmt.Sprintf("No goal set for %s", month)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s 목표:\n%s", month, goal.Text)), nil
}

// ─── GoalSetTool ─────────────────────────────────────────────────────────────

type GoalSetTool struct {
	goals goalsin.Usecase
}

func NewGoalSetTool(goals goalsin.Usecase) *GoalSetTool {
	return &GoalSetTool{goals: goals}
}

func (t *GoalSetTool) Definition() mcp.Tool {
	return mcp.NewTool("routine_goal_set",
		mcp.WithDescription("Write the goal for a month, replacing any previous text."),
		mcp.WithString("month",
			mcp.Required(),
			mcp.Description("Month in YYYY-MM form"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Goal text"),
		),
	)
}

func (t *GoalSetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	month := req.GetString("month", "")
	if month == "" {
		return mcp.NewToolResultError("'month' is required"), nil
	}
	text, ok := stringArg(req, "text")
	if !ok {
		return mcp.NewToolResultError("'text' is required"), nil
	}
	goal, err := t.goals.SetGoal(ctx, goalsdto.SetGoalInput{Month: month, Text: *text})
	if err != nil {
		return toolError("save goal", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Goal for %s saved", goal.Month)), nil
}

func writeWeekLine(sb *strings.Builder, w scheduledto.WeekOutput) {
	mark := " "
	if w.Done {
		mark = "x"
	}
	fmt.Fprintf(sb, "- [%s] #%d %s %s (%s)", mark, w.Index, w.WeekLabel, w.Subject, w.StartDate)
	if plan := strings.Join(strings.Fields(w.PlanText), " "); plan != "" {
		sb.WriteString(" — " + plan)
	}
	sb.WriteString("\n")
}
