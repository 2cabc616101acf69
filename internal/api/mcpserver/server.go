// Package mcpserver exposes the routine as MCP tools over stdio.
//
// Each tool is a struct holding the inbound ports it needs, with
// Definition() returning the schema and Handle() serving the call.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	goalsin "studyroutine/internal/modules/goals/port/in"
	reportin "studyroutine/internal/modules/report/port/in"
	schedulein "studyroutine/internal/modules/schedule/port/in"
)

// Version is set at build time via ldflags.
var Version = "dev"

type Deps struct {
	Schedule schedulein.Usecase
	Goals    goalsin.Usecase
	Report   reportin.Usecase
}

type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New registers every routine tool on a fresh MCP server.
func New(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"studyroutine",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	for _, t := range Tools(deps) {
		s.AddTool(t.Definition(), t.Handle)
	}
	return s
}

// Tools lists the tools in registration order.
func Tools(deps Deps) []Tool {
	return []Tool{
		NewTodayTool(deps.Schedule, deps.Goals),
		NewMonthTool(deps.Schedule, deps.Report),
		NewRemindersTool(deps.Schedule),
		NewSetDoneTool(deps.Schedule),
		NewUpdateWeekTool(deps.Schedule),
		NewStatsTool(deps.Report),
		NewGoalGetTool(deps.Goals),
		NewGoalSetTool(deps.Goals),
	}
}

const instructions = "Tracks a 156-week study routine for the 감정평가사 exam. " +
	"Use routine_today to see the current week, routine_month and routine_reminders to browse, " +
	"routine_set_done and routine_update_week to record progress, and routine_goal_* for monthly goals."
