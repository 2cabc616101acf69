package in

import (
	"context"

	goalsdto "studyroutine/internal/modules/goals/dto"
	goalsin "studyroutine/internal/modules/goals/port/in"
)

type CLIHandler struct {
	usecase goalsin.Usecase
}

func NewCLIHandler(usecase goalsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context, month string) (goalsdto.GoalOutput, error) {
	return h.usecase.GetGoal(ctx, month)
}

func (h CLIHandler) Set(ctx context.Context, month, text string) (goalsdto.GoalOutput, error) {
	return h.usecase.SetGoal(ctx, goalsdto.SetGoalInput{Month: month, Text: text})
}

func (h CLIHandler) List(ctx context.Context) ([]goalsdto.GoalOutput, error) {
	return h.usecase.ListGoals(ctx)
}
