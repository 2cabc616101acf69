package mcpserver_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"studyroutine/internal/api/mcpserver"
	goalsout "studyroutine/internal/modules/goals/adapter/out"
	goalsservice "studyroutine/internal/modules/goals/service"
	goalsusecase "studyroutine/internal/modules/goals/usecase"
	reportout "studyroutine/internal/modules/report/adapter/out"
	reportservice "studyroutine/internal/modules/report/service"
	reportusecase "studyroutine/internal/modules/report/usecase"
	scheduleout "studyroutine/internal/modules/schedule/adapter/out"
	"studyroutine/internal/modules/schedule/domain"
	scheduleservice "studyroutine/internal/modules/schedule/service"
	scheduleusecase "studyroutine/internal/modules/schedule/usecase"
	"studyroutine/internal/platform/clock"
	"studyroutine/internal/widget"
)

func newDeps(t *testing.T, now time.Time) mcpserver.Deps {
	t.Helper()
	dir := t.TempDir()
	clk := clock.Fixed{At: now}
	kst := time.FixedZone("KST", 9*60*60)
	schedule := scheduleusecase.NewInteractor(scheduleservice.NewScheduleService(
		domain.DefaultPlan(), clk, kst, scheduleout.NewCSVTableStore(filepath.Join(dir, "table.csv")), nil, nil))
	goals := goalsusecase.NewInteractor(goalsservice.NewGoalService(
		goalsout.NewCSVGoalStore(filepath.Join(dir, "goals.csv")), nil))
	report := reportusecase.NewInteractor(reportservice.NewReportService(
		reportout.NewScheduleWeekSource(schedule),
		reportout.NewGoalsSource(goals),
		reportout.NewCSVTableEncoder(),
		reportout.NewLocalFileSink(),
		reportservice.Options{Clock: clk, Location: kst},
	))
	return mcpserver.Deps{Schedule: schedule, Goals: goals, Report: report}
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func call(t *testing.T, tool mcpserver.Tool, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	res, err := tool.Handle(context.Background(), makeReq(args))
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", tool.Definition().Name, err)
	}
	return res
}

func TestToolNamesAreUnique(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, tool := range mcpserver.Tools(newDeps(t, time.Now())) {
		name := tool.Definition().Name
		if !strings.HasPrefix(name, "routine_") || seen[name] {
			t.Fatalf("bad or duplicate tool name %q", name)
		}
		seen[name] = true
	}
	if len(seen) != 8 {
		t.Fatalf("expected 8 tools, got %d", len(seen))
	}
}

func TestTodayTool(t *testing.T) {
	t.Parallel()
	deps := newDeps(t, time.Date(2025, 6, 12, 3, 0, 0, 0, time.UTC))
	call(t, mcpserver.NewGoalSetTool(deps.Goals), map[string]interface{}{"month": "2025-06", "text": "경제학 기초"})

	res := call(t, mcpserver.NewTodayTool(deps.Schedule, deps.Goals), nil)
	text := resultText(res)
	if res.IsError || !strings.Contains(text, "2025-06 2주차") || !strings.Contains(text, "경제학 기초") {
		t.Fatalf("unexpected today card:\n%s", text)
	}

	early := newDeps(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	res = call(t, mcpserver.NewTodayTool(early.Schedule, early.Goals), nil)
	if !res.IsError || resultText(res) != widget.NoActiveRoutine {
		t.Fatalf("expected no active routine error, got %q", resultText(res))
	}
}

func TestSetDoneFeedsMonthAndStats(t *testing.T) {
	t.Parallel()
	deps := newDeps(t, time.Date(2025, 6, 12, 3, 0, 0, 0, time.UTC))

	res := call(t, mcpserver.NewSetDoneTool(deps.Schedule), map[string]interface{}{"index": float64(0)})
	if res.IsError || !strings.Contains(resultText(res), "marked done") {
		t.Fatalf("set done: %q", resultText(res))
	}

	month := resultText(call(t, mcpserver.NewMonthTool(deps.Schedule, deps.Report), map[string]interface{}{"month": "2025-06"}))
	if !strings.Contains(month, "25.0%") || !strings.Contains(month, "- [x] #0") {
		t.Fatalf("unexpected month listing:\n%s", month)
	}

	stats := resultText(call(t, mcpserver.NewStatsTool(deps.Report), map[string]interface{}{"month": "2025-06"}))
	if !strings.Contains(stats, "(1/4)") {
		t.Fatalf("unexpected stats: %q", stats)
	}

	reminders := resultText(call(t, mcpserver.NewRemindersTool(deps.Schedule), map[string]interface{}{"limit": float64(2)}))
	if !strings.Contains(reminders, "(155)") || strings.Count(reminders, "\n- #") != 2 {
		t.Fatalf("unexpected reminders:\n%s", reminders)
	}
}

func TestUpdateWeekTool(t *testing.T) {
	t.Parallel()
	deps := newDeps(t, time.Date(2025, 6, 12, 3, 0, 0, 0, time.UTC))
	tool := mcpserver.NewUpdateWeekTool(deps.Schedule)

	cases := []struct {
		name    string
		args    map[string]interface{}
		isError bool
		substr  string
	}{
		{"missing index", map[string]interface{}{"subject": "민법"}, true, "'index' is required"},
		{"nothing to update", map[string]interface{}{"index": float64(1)}, true, "nothing to update"},
		{"unknown subject", map[string]interface{}{"index": float64(1), "subject": "물리학"}, true, "unknown subject"},
		{"out of range", map[string]interface{}{"index": float64(500), "done": true}, true, "not found"},
		{"plan edit", map[string]interface{}{"index": float64(1), "plan_text": "미시 3장"}, false, "미시 3장"},
	}
	for _, c := range cases {
		res := call(t, tool, c.args)
		if res.IsError != c.isError || !strings.Contains(resultText(res), c.substr) {
			t.Fatalf("%s: got error=%t %q", c.name, res.IsError, resultText(res))
		}
	}
}

func TestGoalTools(t *testing.T) {
	t.Parallel()
	deps := newDeps(t, time.Now())
	get := mcpserver.NewGoalGetTool(deps.Goals)

	if text := resultText(call(t, get, map[string]interface{}{"month": "2025-07"})); !strings.Contains(text, "No goal set") {
		t.Fatalf("expected empty goal, got %q", text)
	}
	if res := call(t, mcpserver.NewGoalSetTool(deps.Goals), map[string]interface{}{"month": "2025-7", "text": "x"}); !res.IsError {
		t.Fatal("expected malformed month to fail")
	}
	call(t, mcpserver.NewGoalSetTool(deps.Goals), map[string]interface{}{"month": "2025-07", "text": "감정평가실무 1회독"})
	if text := resultText(call(t, get, map[string]interface{}{"month": "2025-07"})); !strings.Contains(text, "감정평가실무 1회독") {
		t.Fatalf("unexpected goal %q", text)
	}
}
