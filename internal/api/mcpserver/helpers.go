package mcpserver

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/widget"
)

// intArg extracts an integer argument. JSON numbers arrive as float64.
func intArg(req mcp.CallToolRequest, key string) (int, bool) {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return 0, false
	}
	return int(v), true
}

func boolArg(req mcp.CallToolRequest, key string) (bool, bool) {
	v, ok := req.GetArguments()[key].(bool)
	return v, ok
}

// stringArg reports whether key was given at all, so an empty string can
// still clear a field.
func stringArg(req mcp.CallToolRequest, key string) (*string, bool) {
	v, ok := req.GetArguments()[key].(string)
	if !ok {
		return nil, false
	}
	return &v, true
}

// toolError turns a usecase error into a tool-level error result.
func toolError(action string, err error) *mcp.CallToolResult {
	if errors.Is(err, apperrors.ErrNoActiveWeek) {
		return mcp.NewToolResultError(widget.NoActiveRoutine)
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}
